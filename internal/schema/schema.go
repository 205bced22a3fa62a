// Package schema implements the Claim 169 typed record (C6): the numeric-
// keyed CBOR map described in spec.md §3/§4.6, mapped to a Go struct with
// unknown-key preservation, enum pass-through, and skip_biometrics support.
//
// Grounded on internal/cborcodec's Entry/DecodeMapEntries machinery, reused here the
// same way internal/cwt reuses it for the outer claims map: decode into typed
// fields plus a side-table of whatever the schema doesn't recognise, encode
// by re-assembling both through EncodeDeterministicMap.
package schema

import "github.com/mosip/claim169-go/internal/cborcodec"

// Demographic field keys (spec.md §3, §4.6). spec.md names only `id` (1) and
// `fullName` (2) explicitly (in the S1/S2 test scenarios); the remaining
// demographic key assignments are an Open-Question-style decision (DESIGN.md)
// since original_source/ carries no upstream field table in this retrieval
// pack. Unknown keys are never rejected regardless of this table's shape.
const (
	KeyID                 = 1
	KeyFullName           = 2
	KeyDateOfBirth        = 3
	KeyGender             = 4
	KeyPhoneNumber        = 5
	KeyEmailID            = 6
	KeyAddressLine1       = 7
	KeyAddressLine2       = 8
	KeyAddressLine3       = 9
	KeyCity               = 10
	KeyProvince           = 11
	KeyRegion             = 12
	KeyPostalCode         = 13
	KeyNationality        = 14
	KeyMaritalStatus      = 15
	KeyPhoto              = 16
	KeyPhotoFormat        = 17
	KeyBestQualityFingers = 18
	KeyPreferredLang      = 19
	KeyFullNameLocal      = 20
	KeyProvinceCode       = 21
	KeyRegionCode         = 22
	KeyGuardianName       = 23
)

// Biometric group keys 50-65, positionally mapped to the 16 MOSIP-standard
// body parts in ascending key order (decision recorded in DESIGN.md / SPEC_FULL.md).
const (
	KeyBiometricRightIndex = iota + 50
	KeyBiometricRightLittle
	KeyBiometricRightMiddle
	KeyBiometricRightRing
	KeyBiometricRightThumb
	KeyBiometricLeftIndex
	KeyBiometricLeftLittle
	KeyBiometricLeftMiddle
	KeyBiometricLeftRing
	KeyBiometricLeftThumb
	KeyBiometricRightIris
	KeyBiometricLeftIris
	KeyBiometricFace
	KeyBiometricLeftPalmprint
	KeyBiometricRightPalmprint
	KeyBiometricExceptionPhoto
)

// BiometricGroup names one of the 16 biometric keys; additive metadata only,
// never consulted during decode/encode validation.
type BiometricGroup int

// biometricGroupNames is ordered so that biometricGroupNames[key-50] names key.
var biometricGroupNames = []string{
	"RightIndex", "RightLittle", "RightMiddle", "RightRing", "RightThumb",
	"LeftIndex", "LeftLittle", "LeftMiddle", "LeftRing", "LeftThumb",
	"RightIris", "LeftIris", "Face", "LeftPalmprint", "RightPalmprint",
	"ExceptionPhoto",
}

// String returns the MOSIP body-part name for a biometric group key in
// [50,65], or "" for anything outside that range (unrecognised keys are
// still preserved by the codec; this helper is purely descriptive).
func (g BiometricGroup) String() string {
	idx := int(g) - 50
	if idx < 0 || idx >= len(biometricGroupNames) {
		return ""
	}
	return biometricGroupNames[idx]
}

// Photo format enum (key 17), explicit in spec.md §3.
const (
	PhotoFormatJPEG     = 1
	PhotoFormatJPEG2000 = 2
	PhotoFormatAVIF     = 3
	PhotoFormatWEBP     = 4
)

// Biometric entry format enum, explicit in spec.md §3.
const (
	BiometricFormatImage    = 0
	BiometricFormatTemplate = 1
	BiometricFormatSound    = 2
	BiometricFormatBioHash  = 3
)

// Biometric entry field keys within each biometric array element (spec.md §4.6).
const (
	bioKeyFormat    = 1
	bioKeySubFormat = 2
	bioKeyIssuer    = 3
	bioKeyData      = 4
)

// Biometric is one entry in a biometric group's ordered sequence.
type Biometric struct {
	Data      []byte
	Format    int
	SubFormat *int
	Issuer    *string
}

// Claim169 is the typed identity record. Every field is optional except
// where the spec's test scenarios require it; unrecognised CBOR keys are
// preserved in Unknowns for byte-exact re-encoding.
type Claim169 struct {
	ID          *string
	FullName    *string
	DateOfBirth *string
	Gender      *int
	PhoneNumber *string
	EmailID     *string

	AddressLine1 *string
	AddressLine2 *string
	AddressLine3 *string
	City         *string
	Province     *string
	Region       *string
	PostalCode   *string
	Nationality  *string

	MaritalStatus *int

	Photo       []byte
	PhotoFormat *int

	BestQualityFingers []int

	PreferredLang *string
	FullNameLocal *string

	ProvinceCode *string
	RegionCode   *string
	GuardianName *string

	// Biometrics maps a biometric group key (50-65) to its ordered entries.
	Biometrics map[int][]Biometric

	// BiometricsSkipped lists group keys whose presence was detected but
	// whose data was dropped by skip_biometrics; re-encoding omits them and
	// the driver surfaces a warning (spec.md §4.6).
	BiometricsSkipped []int

	// Unknowns preserves every top-level CBOR map entry whose key this
	// schema doesn't recognise, raw bytes intact for byte-exact re-encode.
	Unknowns []cborcodec.Entry
}
