package wallet

import (
	"context"
	"encoding/hex"

	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/metrics"
	"github.com/chapool/rosetta-signer/internal/util"
	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/chapool/rosetta-signer/internal/wallet/payload"
	"github.com/chapool/rosetta-signer/internal/wallet/seed"
	"github.com/chapool/rosetta-signer/internal/wallet/signer"
	"github.com/chapool/rosetta-signer/internal/wallet/tx"
	"github.com/chapool/rosetta-signer/internal/wallet/txerrors"
	"github.com/pkg/errors"
)

type service struct {
	network        address.Network
	normalizer     *payload.Normalizer
	seedManager    seed.Manager
	addressService address.Service
	signerService  signer.Service
	metrics        *metrics.Metrics
}

// NewService creates a new WalletService
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(
	cfg config.Signer,
	normalizer *payload.Normalizer,
	seedManager seed.Manager,
	addressService address.Service,
	signerService signer.Service,
	m *metrics.Metrics,
) (Service, error) {
	network, err := address.ParseNetwork(cfg.Network)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse network")
	}

	return &service{
		network:        network,
		normalizer:     normalizer,
		seedManager:    seedManager,
		addressService: addressService,
		signerService:  signerService,
		metrics:        m,
	}, nil
}

// NewNormalizer builds the payload normalizer from configuration
func NewNormalizer(cfg config.Signer) *payload.Normalizer {
	opts := []payload.Option{payload.WithEnvelopePassThrough(cfg.Payload.AllowEnvelope)}
	if len(cfg.Payload.MapPrefixes) > 0 {
		opts = append(opts, payload.WithMapPrefixes(cfg.Payload.MapPrefixes...))
	}
	return payload.New(opts...)
}

// Normalize turns a Rosetta unsigned transaction into a signable envelope
func (s *service) Normalize(ctx context.Context, unsignedTx string) (payload.Result, error) {
	res, err := s.normalizer.NormalizeDetailed(ctx, unsignedTx)
	if err != nil {
		s.metrics.Failure(txerrors.Kind(err))
		return payload.Result{}, err
	}

	s.metrics.PayloadNormalized(string(res.Source))
	return res, nil
}

// SignRosettaTransaction normalizes, derives the requested keys and signs
func (s *service) SignRosettaTransaction(ctx context.Context, req *SignRequest) (*SignResult, error) {
	normalized, err := s.Normalize(ctx, req.UnsignedTx)
	if err != nil {
		return nil, err
	}

	return s.SignNormalized(ctx, normalized, req)
}

// SignNormalized derives the requested keys and signs an already normalized payload
func (s *service) SignNormalized(ctx context.Context, normalized payload.Result, req *SignRequest) (*SignResult, error) {
	log := util.LogFromContext(ctx).With().Str("component", "wallet").Logger()

	paymentPath, err := req.PaymentPath()
	if err != nil {
		return nil, err
	}

	if req.ExpectedKeyHash != "" {
		if err := VerifyExpectedKeyHash(ctx, s.seedManager, s.addressService, paymentPath, req.ExpectedKeyHash); err != nil {
			s.metrics.Failure(txerrors.Kind(err))
			return nil, err
		}
	}

	envelope, err := hex.DecodeString(normalized.Envelope)
	if err != nil {
		return nil, txerrors.NewFormat("malformed envelope hex", err)
	}

	paths := []address.DerivationPath{paymentPath}
	if req.WithStakeKey {
		paths = append(paths, address.StakePath(paymentPath.Account, req.StakeIndex))
	}

	signed, err := s.signerService.SignTransaction(ctx, &signer.SignRequest{
		Envelope: envelope,
		Paths:    paths,
	})
	if err != nil {
		s.metrics.Failure(txerrors.Kind(err))
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	for _, w := range signed.Witnesses {
		if w.Added {
			s.metrics.SignatureAdded(w.Path.RoleName())
		}
	}

	log.Info().
		Str("tx_hash", signed.TxHash).
		Str("source", string(normalized.Source)).
		Int("witnesses", len(signed.Witnesses)).
		Msg("Transaction signed")

	return &SignResult{
		UnsignedTx: normalized.Envelope,
		Source:     normalized.Source,
		SignedTx:   hex.EncodeToString(signed.SignedTx),
		TxHash:     signed.TxHash,
		Witnesses:  ToWitnessInfos(signed.Witnesses),
	}, nil
}

// DeriveKeys derives the payment and stake keys and their addresses
func (s *service) DeriveKeys(ctx context.Context, account uint32, index uint32) (*KeySet, error) {
	return s.DeriveKeysAtPath(ctx, address.PaymentPath(account, index))
}

// DeriveKeysAtPath derives the key at paymentPath and the first stake key of its account
func (s *service) DeriveKeysAtPath(ctx context.Context, paymentPath address.DerivationPath) (*KeySet, error) {
	root, err := s.seedManager.GetRootKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get root key")
	}
	defer root.Clear()

	stakePath := address.StakePath(paymentPath.Account, address.DefaultIndex)

	payment, err := s.addressService.DerivePublicKey(ctx, root, paymentPath)
	if err != nil {
		return nil, err
	}

	stake, err := s.addressService.DerivePublicKey(ctx, root, stakePath)
	if err != nil {
		return nil, err
	}

	enterprise, err := s.addressService.EnterpriseAddress(s.network, payment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode enterprise address")
	}

	base, err := s.addressService.BaseAddress(s.network, payment, stake)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode base address")
	}

	reward, err := s.addressService.RewardAddress(s.network, stake)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode reward address")
	}

	return &KeySet{
		Network:           networkName(s.network),
		PaymentPath:       paymentPath.String(),
		PaymentPublicKey:  hex.EncodeToString(payment),
		PaymentKeyHash:    hex.EncodeToString(s.addressService.KeyHash(payment)),
		StakePath:         stakePath.String(),
		StakePublicKey:    hex.EncodeToString(stake),
		StakeKeyHash:      hex.EncodeToString(s.addressService.KeyHash(stake)),
		EnterpriseAddress: enterprise,
		BaseAddress:       base,
		RewardAddress:     reward,
	}, nil
}

// Inspect decodes a transaction envelope and verifies its vkey witnesses
func (s *service) Inspect(_ context.Context, envelopeHex string) (*Inspection, error) {
	transaction, err := tx.ParseHex(envelopeHex)
	if err != nil {
		s.metrics.Failure(txerrors.Kind(err))
		return nil, err
	}

	return &Inspection{
		TxHash:    transaction.HashHex(),
		IsValid:   transaction.IsValid(),
		Witnesses: VerifyWitnesses(transaction),
	}, nil
}

func networkName(n address.Network) string {
	if n == address.Mainnet {
		return "mainnet"
	}
	return "testnet"
}
