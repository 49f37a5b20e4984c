package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" //nolint:gosec // building fixtures for the handler under test
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRC4Handler computes O and U for an R3 document the way a writer
// would (Algorithms 3.3-3.5), so Authenticate has something real to check.
func buildRC4Handler(t *testing.T, userPwd, ownerPwd string, perms int32, fileID []byte) *StandardSecurityHandler {
	t.Helper()

	ownerHash := md5.Sum(padPassword(ownerPwd)) //nolint:gosec // fixture
	hash := ownerHash[:]
	for i := 0; i < 50; i++ {
		sum := md5.Sum(hash) //nolint:gosec // fixture
		hash = sum[:]
	}
	ownerKey := hash[:16]

	o := rc4Apply(ownerKey, padPassword(userPwd))
	for i := 1; i <= 19; i++ {
		o = rc4Apply(xorKey(ownerKey, byte(i)), o)
	}

	h := &StandardSecurityHandler{
		V: 2, R: 3, KeyLength: 128,
		P: perms, O: o, FileID: fileID,
	}

	key := h.fileKeyMD5(userPwd)
	digest := md5.New() //nolint:gosec // fixture
	digest.Write(passwordPad)
	digest.Write(fileID)
	u := rc4Apply(key, digest.Sum(nil))
	for i := 1; i <= 19; i++ {
		u = rc4Apply(xorKey(key, byte(i)), u)
	}
	h.U = append(u, make([]byte, 32-len(u))...)
	return h
}

func TestAuthenticate_RC4R3(t *testing.T) {
	h := buildRC4Handler(t, "user-secret", "owner-secret", -44, []byte("file-id-01"))

	key, ok := h.Authenticate("user-secret")
	require.True(t, ok)
	assert.Len(t, key, 16)

	_, ok = h.Authenticate("wrong")
	assert.False(t, ok)
	_, ok = h.Authenticate("")
	assert.False(t, ok)
}

func TestAuthenticate_RC4R3EmptyPassword(t *testing.T) {
	h := buildRC4Handler(t, "", "", -1, []byte("id"))

	_, ok := h.Authenticate("")
	assert.True(t, ok)
	_, ok = h.Authenticate("anything")
	assert.False(t, ok)
}

// buildAES256Handler wraps a random file key under the R6 password
// algorithms, mirroring what a conforming writer emits in U and UE.
func buildAES256Handler(t *testing.T, password string, revision int) (*StandardSecurityHandler, []byte) {
	t.Helper()

	fileKey := make([]byte, 32)
	_, err := rand.Read(fileKey)
	require.NoError(t, err)

	validationSalt := []byte("8bytesal")
	keySalt := []byte("saltkey8")

	h := &StandardSecurityHandler{V: 5, R: revision, KeyLength: 256, AES: true}

	pw := []byte(password)
	verification := h.hash2(pw, validationSalt)
	h.U = append(append(append([]byte{}, verification...), validationSalt...), keySalt...)

	block, err := aes.NewCipher(h.hash2(pw, keySalt))
	require.NoError(t, err)
	ue := make([]byte, 32)
	cipher.NewCBCEncrypter(block, make([]byte, aes.BlockSize)).CryptBlocks(ue, fileKey)
	h.UE = ue

	return h, fileKey
}

func TestAuthenticate_AES256R6(t *testing.T) {
	h, fileKey := buildAES256Handler(t, "täble-extract", 6)

	got, ok := h.Authenticate("täble-extract")
	require.True(t, ok)
	assert.Equal(t, fileKey, got)

	_, ok = h.Authenticate("not-it")
	assert.False(t, ok)
}

func TestAuthenticate_AES256R5(t *testing.T) {
	h, fileKey := buildAES256Handler(t, "legacy", 5)

	got, ok := h.Authenticate("legacy")
	require.True(t, ok)
	assert.Equal(t, fileKey, got)
}

func TestAuthenticate_AES256MalformedU(t *testing.T) {
	h := &StandardSecurityHandler{V: 5, R: 6, U: []byte("short"), UE: []byte("short")}
	_, ok := h.Authenticate("whatever")
	assert.False(t, ok)
}

func TestHardenedHash_Deterministic(t *testing.T) {
	first := sha256.Sum256([]byte("pw" + "salt8888"))
	a := hardenedHash(first[:], []byte("pw"))
	b := hardenedHash(first[:], []byte("pw"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	other := hardenedHash(first[:], []byte("pw2"))
	assert.NotEqual(t, a, other)
}

func TestObjectKey(t *testing.T) {
	fileKey := []byte("0123456789abcdef")

	rc4Key := ObjectKey(fileKey, 12, 0, false)
	assert.Len(t, rc4Key, 16)

	aesKey := ObjectKey(fileKey, 12, 0, true)
	assert.Len(t, aesKey, 16)
	assert.NotEqual(t, rc4Key, aesKey, "AESV2 salt must change the digest")

	short := ObjectKey([]byte("12345"), 1, 0, false)
	assert.Len(t, short, 10)
}

func TestDecryptRC4_Symmetric(t *testing.T) {
	key := []byte("sixteen-byte-key")
	plain := []byte("lattice and stream")

	ct, err := DecryptRC4(key, plain)
	require.NoError(t, err)
	require.NotEqual(t, plain, ct)

	back, err := DecryptRC4(key, ct)
	require.NoError(t, err)
	assert.Equal(t, plain, back)
}

func TestDecryptAES_RoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef")
	plain := []byte("cell text payload")

	// build IV-prefixed CBC ciphertext with PKCS#7 padding, as PDF stores it
	pad := aes.BlockSize - len(plain)%aes.BlockSize
	padded := append(append([]byte{}, plain...), make([]byte, pad)...)
	for i := len(plain); i < len(padded); i++ {
		padded[i] = byte(pad)
	}
	iv := make([]byte, aes.BlockSize)
	_, err := rand.Read(iv)
	require.NoError(t, err)
	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	got, err := DecryptAES(key, append(append([]byte{}, iv...), ct...))
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestDecryptAES_Malformed(t *testing.T) {
	key := []byte("0123456789abcdef")

	_, err := DecryptAES(key, []byte("tiny"))
	assert.ErrorIs(t, err, ErrDataTooShort)

	// IV present but ciphertext not block-aligned
	_, err = DecryptAES(key, make([]byte, aes.BlockSize+5))
	assert.ErrorIs(t, err, ErrDataTooShort)
}

func TestStripPKCS7(t *testing.T) {
	out, err := stripPKCS7([]byte{'a', 'b', 2, 2})
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), out)

	_, err = stripPKCS7([]byte{'a', 'b', 9, 3})
	assert.ErrorIs(t, err, ErrInvalidPadding)

	_, err = stripPKCS7([]byte{0})
	assert.ErrorIs(t, err, ErrInvalidPadding)
}

func TestPadPassword(t *testing.T) {
	empty := padPassword("")
	assert.Equal(t, passwordPad, empty)

	long := padPassword("0123456789012345678901234567890123456789")
	assert.Len(t, long, 32)
	assert.Equal(t, byte('0'), long[0])
}
