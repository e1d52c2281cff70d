package csvtable

import (
	"strings"

	"github.com/domonda/go-types/charset"
)

// CharsetEncoder returns an Encoder converting UTF-8
// to the named charset like "ISO 8859-1" or "Windows 1252".
func CharsetEncoder(name string) (Encoder, error) {
	enc, err := charset.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	return EncoderFunc(enc.Encode), nil
}

func isUTF8(encoding string) bool {
	switch strings.ToUpper(strings.ReplaceAll(encoding, "-", "")) {
	case "UTF8", "":
		return true
	}
	return false
}
