package epubtoc

import (
	"archive/zip"
	"encoding/xml"
	"strings"
)

const (
	encryptionPath = "META-INF/encryption.xml"
	fairPlayPath   = "META-INF/sinf.xml" // present only in Apple FairPlay books
)

// Font obfuscation is not DRM: the text stays readable.
var fontObfuscationAlgorithms = map[string]bool{
	"http://www.idpf.org/2008/embedding": true,
	"http://ns.adobe.com/pdf/enc#RC":     true,
}

type encryptionXML struct {
	XMLName xml.Name `xml:"encryption"`
	Data    []struct {
		Method struct {
			Algorithm string `xml:"Algorithm,attr"`
		} `xml:"EncryptionMethod"`
	} `xml:"EncryptedData"`
}

// checkDRM inspects the archive for DRM markers. It returns
// ErrDRMProtected when any entry is encrypted with something other than
// font obfuscation, and reports whether font obfuscation was seen.
func checkDRM(zr *zip.Reader) (fontObfuscation bool, err error) {
	if lookupEntry(zr, fairPlayPath) != nil {
		return false, ErrDRMProtected
	}

	f := lookupEntry(zr, encryptionPath)
	if f == nil {
		return false, nil
	}
	data, err := readZipFile(f)
	if err != nil {
		return false, err
	}
	if len(strings.TrimSpace(string(stripBOM(data)))) == 0 {
		return false, nil
	}

	var enc encryptionXML
	if err := decodeXML(data, &enc); err != nil {
		// Unreadable descriptor: assume the worst.
		return false, ErrDRMProtected
	}
	for _, d := range enc.Data {
		if !fontObfuscationAlgorithms[strings.TrimSpace(d.Method.Algorithm)] {
			return false, ErrDRMProtected
		}
		fontObfuscation = true
	}
	return fontObfuscation, nil
}
