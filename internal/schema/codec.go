package schema

import (
	"fmt"

	"github.com/mosip/claim169-go/internal/cborcodec"
	"github.com/mosip/claim169-go/internal/perr"
)

const stage = "C6"

func wrapParse(msg string, cause error) error {
	return perr.New(perr.Claim169Parse, stage, msg, cause)
}

// Decode parses a Claim-169 CBOR map into a typed Claim169 record. When
// skipBiometrics is set, biometric group presence is still recorded but the
// underlying entries' data is dropped and a warning is returned (spec.md
// §4.6 skip_biometrics).
func Decode(data []byte, skipBiometrics bool) (*Claim169, []string, error) {
	entries, err := cborcodec.DecodeMapEntries(data)
	if err != nil {
		return nil, nil, wrapParse("Claim-169 payload is not a CBOR map", err)
	}

	c := &Claim169{Biometrics: map[int][]Biometric{}}
	var warnings []string

	for _, e := range entries {
		if e.IntKey == nil {
			c.Unknowns = append(c.Unknowns, e)
			continue
		}
		key := int(*e.IntKey)

		if key >= KeyBiometricRightIndex && key <= KeyBiometricExceptionPhoto {
			bios, skipped, err := decodeBiometricGroup(e.Value, skipBiometrics)
			if err != nil {
				return nil, nil, wrapParse(fmt.Sprintf("biometric group %d malformed", key), err)
			}
			if skipped {
				c.BiometricsSkipped = append(c.BiometricsSkipped, key)
				warnings = append(warnings, fmt.Sprintf("skip_biometrics: dropped data for group %d (%s)", key, BiometricGroup(key).String()))
			} else {
				c.Biometrics[key] = bios
			}
			continue
		}

		switch key {
		case KeyID:
			c.ID, err = decodeString(e.Value)
		case KeyFullName:
			c.FullName, err = decodeString(e.Value)
		case KeyDateOfBirth:
			c.DateOfBirth, err = decodeString(e.Value)
		case KeyGender:
			c.Gender, err = decodeInt(e.Value)
		case KeyPhoneNumber:
			c.PhoneNumber, err = decodeString(e.Value)
		case KeyEmailID:
			c.EmailID, err = decodeString(e.Value)
		case KeyAddressLine1:
			c.AddressLine1, err = decodeString(e.Value)
		case KeyAddressLine2:
			c.AddressLine2, err = decodeString(e.Value)
		case KeyAddressLine3:
			c.AddressLine3, err = decodeString(e.Value)
		case KeyCity:
			c.City, err = decodeString(e.Value)
		case KeyProvince:
			c.Province, err = decodeString(e.Value)
		case KeyRegion:
			c.Region, err = decodeString(e.Value)
		case KeyPostalCode:
			c.PostalCode, err = decodeString(e.Value)
		case KeyNationality:
			c.Nationality, err = decodeString(e.Value)
		case KeyMaritalStatus:
			c.MaritalStatus, err = decodeInt(e.Value)
		case KeyPhoto:
			err = cborcodec.Unmarshal(e.Value, &c.Photo)
		case KeyPhotoFormat:
			c.PhotoFormat, err = decodeInt(e.Value)
		case KeyBestQualityFingers:
			err = cborcodec.Unmarshal(e.Value, &c.BestQualityFingers)
		case KeyPreferredLang:
			c.PreferredLang, err = decodeString(e.Value)
		case KeyFullNameLocal:
			c.FullNameLocal, err = decodeString(e.Value)
		case KeyProvinceCode:
			c.ProvinceCode, err = decodeString(e.Value)
		case KeyRegionCode:
			c.RegionCode, err = decodeString(e.Value)
		case KeyGuardianName:
			c.GuardianName, err = decodeString(e.Value)
		default:
			c.Unknowns = append(c.Unknowns, e)
		}
		if err != nil {
			return nil, nil, wrapParse(fmt.Sprintf("key %d malformed", key), err)
		}
	}

	return c, warnings, nil
}

func decodeString(raw cborcodec.RawMessage) (*string, error) {
	var s string
	if err := cborcodec.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeInt(raw cborcodec.RawMessage) (*int, error) {
	var v int64
	if err := cborcodec.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	iv := int(v)
	return &iv, nil
}

type wireBiometric struct {
	Format    int
	SubFormat *int
	Issuer    *string
	Data      []byte
}

func decodeBiometricGroup(raw cborcodec.RawMessage, skipBiometrics bool) ([]Biometric, bool, error) {
	var rawEntries []cborcodec.RawMessage
	if err := cborcodec.Unmarshal(raw, &rawEntries); err != nil {
		return nil, false, err
	}

	if skipBiometrics {
		return nil, true, nil
	}

	bios := make([]Biometric, 0, len(rawEntries))
	for _, entryRaw := range rawEntries {
		fields, err := cborcodec.DecodeMapEntries(entryRaw)
		if err != nil {
			return nil, false, err
		}
		var b Biometric
		for _, f := range fields {
			if f.IntKey == nil {
				continue
			}
			switch int(*f.IntKey) {
			case bioKeyFormat:
				v, err := decodeInt(f.Value)
				if err != nil {
					return nil, false, err
				}
				b.Format = *v
			case bioKeySubFormat:
				v, err := decodeInt(f.Value)
				if err != nil {
					return nil, false, err
				}
				b.SubFormat = v
			case bioKeyIssuer:
				v, err := decodeString(f.Value)
				if err != nil {
					return nil, false, err
				}
				b.Issuer = v
			case bioKeyData:
				if err := cborcodec.Unmarshal(f.Value, &b.Data); err != nil {
					return nil, false, err
				}
			}
		}
		bios = append(bios, b)
	}
	return bios, false, nil
}

// Encode assembles the Claim-169 CBOR map bytes from a typed record,
// re-emitting unknown entries in canonical key order alongside known ones.
// Biometric groups recorded as skipped are omitted (their data is
// unavailable); the caller is expected to have already surfaced the warning
// produced at decode time.
func Encode(c *Claim169) ([]byte, error) {
	entries := make([]cborcodec.Entry, 0, 32)

	addString := func(key int, v *string) error {
		if v == nil {
			return nil
		}
		e, err := cborcodec.IntEntry(int64(key), *v)
		if err != nil {
			return err
		}
		entries = append(entries, e)
		return nil
	}
	addInt := func(key int, v *int) error {
		if v == nil {
			return nil
		}
		e, err := cborcodec.IntEntry(int64(key), int64(*v))
		if err != nil {
			return err
		}
		entries = append(entries, e)
		return nil
	}

	if err := addString(KeyID, c.ID); err != nil {
		return nil, err
	}
	if err := addString(KeyFullName, c.FullName); err != nil {
		return nil, err
	}
	if err := addString(KeyDateOfBirth, c.DateOfBirth); err != nil {
		return nil, err
	}
	if err := addInt(KeyGender, c.Gender); err != nil {
		return nil, err
	}
	if err := addString(KeyPhoneNumber, c.PhoneNumber); err != nil {
		return nil, err
	}
	if err := addString(KeyEmailID, c.EmailID); err != nil {
		return nil, err
	}
	if err := addString(KeyAddressLine1, c.AddressLine1); err != nil {
		return nil, err
	}
	if err := addString(KeyAddressLine2, c.AddressLine2); err != nil {
		return nil, err
	}
	if err := addString(KeyAddressLine3, c.AddressLine3); err != nil {
		return nil, err
	}
	if err := addString(KeyCity, c.City); err != nil {
		return nil, err
	}
	if err := addString(KeyProvince, c.Province); err != nil {
		return nil, err
	}
	if err := addString(KeyRegion, c.Region); err != nil {
		return nil, err
	}
	if err := addString(KeyPostalCode, c.PostalCode); err != nil {
		return nil, err
	}
	if err := addString(KeyNationality, c.Nationality); err != nil {
		return nil, err
	}
	if err := addInt(KeyMaritalStatus, c.MaritalStatus); err != nil {
		return nil, err
	}
	if c.Photo != nil {
		e, err := cborcodec.IntEntry(int64(KeyPhoto), c.Photo)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := addInt(KeyPhotoFormat, c.PhotoFormat); err != nil {
		return nil, err
	}
	if c.BestQualityFingers != nil {
		e, err := cborcodec.IntEntry(int64(KeyBestQualityFingers), c.BestQualityFingers)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := addString(KeyPreferredLang, c.PreferredLang); err != nil {
		return nil, err
	}
	if err := addString(KeyFullNameLocal, c.FullNameLocal); err != nil {
		return nil, err
	}
	if err := addString(KeyProvinceCode, c.ProvinceCode); err != nil {
		return nil, err
	}
	if err := addString(KeyRegionCode, c.RegionCode); err != nil {
		return nil, err
	}
	if err := addString(KeyGuardianName, c.GuardianName); err != nil {
		return nil, err
	}

	for key, bios := range c.Biometrics {
		raw, err := encodeBiometricGroup(bios)
		if err != nil {
			return nil, err
		}
		k := int64(key)
		entries = append(entries, cborcodec.Entry{IntKey: &k, Value: cborcodec.RawMessage(raw)})
	}

	entries = append(entries, c.Unknowns...)

	return cborcodec.EncodeDeterministicMap(entries)
}

func encodeBiometricGroup(bios []Biometric) ([]byte, error) {
	items := make([]cborcodec.RawMessage, 0, len(bios))
	for _, b := range bios {
		fields := make([]cborcodec.Entry, 0, 4)
		fe, err := cborcodec.IntEntry(bioKeyFormat, int64(b.Format))
		if err != nil {
			return nil, err
		}
		fields = append(fields, fe)
		if b.SubFormat != nil {
			se, err := cborcodec.IntEntry(bioKeySubFormat, int64(*b.SubFormat))
			if err != nil {
				return nil, err
			}
			fields = append(fields, se)
		}
		if b.Issuer != nil {
			ie, err := cborcodec.IntEntry(bioKeyIssuer, *b.Issuer)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ie)
		}
		de, err := cborcodec.IntEntry(bioKeyData, b.Data)
		if err != nil {
			return nil, err
		}
		fields = append(fields, de)

		entryRaw, err := cborcodec.EncodeDeterministicMap(fields)
		if err != nil {
			return nil, err
		}
		items = append(items, cborcodec.RawMessage(entryRaw))
	}
	return cborcodec.Marshal(items)
}
