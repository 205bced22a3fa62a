package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/mosip/claim169-go/internal/cborcodec"
	"github.com/mosip/claim169-go/internal/schema"
)

func strp(s string) *string { return &s }
func intp(v int) *int       { return &v }

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := &schema.Claim169{
		ID:       strp("ID-12345-ABCDE"),
		FullName: strp("John Doe"),
		Gender:   intp(1),
		Photo:    []byte{0xFF, 0xD8, 0xFF},
		Biometrics: map[int][]schema.Biometric{
			schema.KeyBiometricRightIndex: {
				{Data: []byte("template-bytes"), Format: schema.BiometricFormatTemplate, Issuer: strp("mosip")},
			},
		},
	}

	wire, err := schema.Encode(c)
	require.NoError(t, err)

	got, warnings, err := schema.Decode(wire, false)
	require.NoError(t, err)
	require.Empty(t, warnings)

	if diff := cmp.Diff(c, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownKeysPreserved(t *testing.T) {
	entries := []cborcodec.Entry{}
	e, err := cborcodec.IntEntry(schema.KeyID, "ID-1")
	require.NoError(t, err)
	entries = append(entries, e)

	unknown, err := cborcodec.IntEntry(999, "future-field")
	require.NoError(t, err)
	entries = append(entries, unknown)

	wire, err := cborcodec.EncodeDeterministicMap(entries)
	require.NoError(t, err)

	c, _, err := schema.Decode(wire, false)
	require.NoError(t, err)
	require.Equal(t, "ID-1", *c.ID)
	require.Len(t, c.Unknowns, 1)
	require.Equal(t, int64(999), *c.Unknowns[0].IntKey)

	reencoded, err := schema.Encode(c)
	require.NoError(t, err)
	require.Equal(t, wire, reencoded)
}

func TestSkipBiometricsDropsDataAndWarns(t *testing.T) {
	c := &schema.Claim169{
		ID: strp("ID-2"),
		Biometrics: map[int][]schema.Biometric{
			schema.KeyBiometricFace: {{Data: []byte("face-template"), Format: schema.BiometricFormatTemplate}},
		},
	}
	wire, err := schema.Encode(c)
	require.NoError(t, err)

	got, warnings, err := schema.Decode(wire, true)
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	require.Empty(t, got.Biometrics)
	require.Contains(t, got.BiometricsSkipped, schema.KeyBiometricFace)
}

func TestBiometricGroupStringNaming(t *testing.T) {
	require.Equal(t, "RightIndex", schema.BiometricGroup(schema.KeyBiometricRightIndex).String())
	require.Equal(t, "ExceptionPhoto", schema.BiometricGroup(schema.KeyBiometricExceptionPhoto).String())
	require.Equal(t, "", schema.BiometricGroup(49).String())
}

func TestUnknownEnumCodePassesThroughSilently(t *testing.T) {
	// Open Question #2: unknown enum codes pass silently, never rejected.
	c := &schema.Claim169{Gender: intp(7)}
	wire, err := schema.Encode(c)
	require.NoError(t, err)

	got, _, err := schema.Decode(wire, false)
	require.NoError(t, err)
	require.Equal(t, 7, *got.Gender)
}
