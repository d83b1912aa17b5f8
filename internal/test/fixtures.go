// Package test holds shared fixtures for package tests.
package test

// Mnemonics with known derivations
const (
	ZeroEntropyMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon " +
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art"
	CIP19Mnemonic = "test walk nut penalty hip pave soap entry language right filter choice"
)

// Keys of ZeroEntropyMnemonic at 1852'/1815'/0'/0/0 and 1852'/1815'/0'/2/0
const (
	ZeroEntropyPaymentKey     = "63c5d69570349e4233a0575811464f0e8a3fd329abe76e9bdc3d3f1b95982179"
	ZeroEntropyPaymentKeyHash = "00b7847c89d5721592fc0cc8932f50a8f8258b39b93861140a1b99fb"
	ZeroEntropyStakeKey       = "366598ec425ab8140830c4b5f91716d0f7b113fd7013ef3c90487e9dd1535437"
	ZeroEntropyStakeKeyHash   = "c2f45a16a6685616e566c00fc081fe59f8bd7ab679ee15e9ce203446"
)

// MapPayload is a bare transaction body as returned by a Rosetta construction API
const MapPayload = "a400818258202138e16c10911f1c0e264909b0c8e6af903e3370b2a8a75ebf5443081100ec71000182825839000743d1" +
	"6cfe3c4fcc0c11c2403bbc10dbc7ecdd4477e053481a368e7a06e2ae44dff6770dc0f4ada3cf4cf2605008e27aecdb332ad349fda71a7735940082" +
	"581d60d6dbfa87f1054da9d47d612b82634eff44871c371554c8e6732d53f41b00000001dcd3c37f021a00028c81031a026c822a"

// MapPayloadHash is the transaction id of MapPayload
const MapPayloadHash = "60434a3e586236dd4108866af64842d8167072a81f8e31e13fce39d961b319fc"

// MapPayloadPaymentSignature is ZeroEntropyPaymentKey's signature of MapPayloadHash
const MapPayloadPaymentSignature = "c97d41642f308e2d69013319a98e4022ac1abb07d3ff234ea13be524a2be57279095149654e20ac53a40ce33384e584b" +
	"e38385ce81fd4d936fd4e5a688e5ee0b"

// MapPayloadStakeSignature is ZeroEntropyStakeKey's signature of MapPayloadHash
const MapPayloadStakeSignature = "3fab5cd41bf5bd8d59d0e7660c35d7f0d29b307e597e102494467d2a8e082550e2c05107a4a98e7fa94e72997381aebc" +
	"f10954b470a3d1261d2cc790a5878103"

// WrappedPayload is [body_hex, metadata] with the body as a hex text string
const WrappedPayload = "8278f26134303064393031303238313832353832306633383131613830386135326362393366616362303538393465363861323066333266333438663131366436626231306236613234616266306639306630373330313031383138323538333930303332656434626132643437393133393530653938346565326138313335653536323334333532326139346130636562383965363561663239396431343364646433613633383634303834346161646166303735383930303563616132336138316662336638616266363532346238613431613038313661343438303231613030303238366139303331613034383335366531a16a6f7065726174696f6e7381a6746f7065726174696f6e5f6964656e746966696572a265696e646578006d6e6574776f726b5f696e64657800676163636f756e74a16761646472657373786c616464725f74657374317170726668356a6c357a666b6c616b68636d65657a6b7376727830796c70366861613234706b356d7434746477326634386e6c7237646d70716767337666303632367134336366616c65703973386b6e6c30337772786e6c6c3664736c723777666a66616d6f756e74a26863757272656e6379a26673796d626f6c6341444168646563696d616c73066576616c75656a2d3133353836373132316b636f696e5f6368616e6765a26f636f696e5f6964656e746966696572a16a6964656e7469666965727842663338313161383038613532636239336661636230353839346536386132306633326633343866313136643662623130623661323461626630663930663037333a316b636f696e5f616374696f6e6a636f696e5f7370656e74667374617475736773756363657373647479706565696e707574"

// WrappedPayloadBody is the body embedded in WrappedPayload
const WrappedPayloadBody = "a400d9010281825820f3811a808a52cb93facb05894e68a20f32f348f116d6bb10b6a24abf0f90f0730101818258390032" +
	"ed4ba2d47913950e984ee2a8135e562343522a94a0ceb89e65af299d143ddd3a638640844aadaf07589005caa23a81fb3f8abf6524b8a41a0816a4" +
	"48021a000286a9031a048356e1"

// SignedMapPayload returns MapPayload signed by the payment key only
func SignedMapPayload() string {
	return "84" + MapPayload +
		"a10081825820" + ZeroEntropyPaymentKey + "5840" + MapPayloadPaymentSignature +
		"f5f6"
}

// DoubleSignedMapPayload returns MapPayload signed by the payment and stake keys
func DoubleSignedMapPayload() string {
	return "84" + MapPayload +
		"a10082" +
		"825820" + ZeroEntropyPaymentKey + "5840" + MapPayloadPaymentSignature +
		"825820" + ZeroEntropyStakeKey + "5840" + MapPayloadStakeSignature +
		"f5f6"
}
