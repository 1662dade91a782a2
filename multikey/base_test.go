package multikey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase58(t *testing.T) {
	assert := assert.New(t)

	// leading zero bytes are preserved as leading '1' characters
	assert.Equal("112", EncodeBase58([]byte{0, 0, 1}))
	buf, err := DecodeBase58("112")
	assert.NoError(err)
	assert.Equal([]byte{0, 0, 1}, buf)

	buf, err = DecodeBase58("")
	assert.NoError(err)
	assert.Empty(buf)

	data := []byte{0x00, 0xED, 0x01, 0xFF, 0x00}
	buf, err = DecodeBase58(EncodeBase58(data))
	assert.NoError(err)
	assert.Equal(data, buf)

	for _, bad := range []string{"0", "O", "I", "l", "abc+", "2 2", "z\n"} {
		_, err := DecodeBase58(bad)
		assert.ErrorIs(err, ErrEncoding, bad)
	}
}

func TestBase64URL(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("_w", EncodeBase64URL([]byte{0xff}))
	assert.Equal("-_8", EncodeBase64URL([]byte{0xfb, 0xff}))

	buf, err := DecodeBase64URL("-_8")
	assert.NoError(err)
	assert.Equal([]byte{0xfb, 0xff}, buf)

	invalid := []string{
		"_w==",   // padding
		"a",      // length
		"+/8",    // standard alphabet
		"_x",     // non-zero trailing bits
		"ab\ncd", // line break
		"ab cd",
	}
	for _, bad := range invalid {
		_, err := DecodeBase64URL(bad)
		assert.ErrorIs(err, ErrEncoding, bad)
	}
}

func TestMultibase(t *testing.T) {
	assert := assert.New(t)

	data := []byte{0xED, 0x01, 0x02, 0x03}
	s := EncodeMultibase(data)
	assert.Equal("z"+EncodeBase58(data), s)

	buf, err := DecodeMultibase(s)
	assert.NoError(err)
	assert.Equal(data, buf)

	buf, err = DecodeMultibase("z")
	assert.NoError(err)
	assert.Empty(buf)

	// valid multibase, but not base58btc
	for _, bad := range []string{"", "f00ff", "Z6Mk", "mAQID", "zz0"} {
		_, err := DecodeMultibase(bad)
		assert.ErrorIs(err, ErrEncoding, bad)
	}
}
