package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/henderiw/intervalset/pkg/intervalset"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	var out bytes.Buffer
	cmd := newRootCmd(log, viper.New())
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEval(t *testing.T) {
	cases := map[string]struct {
		args    []string
		want    string
		wantErr bool
	}{
		"Union":                {args: []string{"eval", "union", "{[1..2][5..6]}", "[3..4]"}, want: "[1..6]\n"},
		"Intersection":         {args: []string{"eval", "intersection", "[1..10]", "{[0..2][9..12]}"}, want: "{[1..2][9..10]}\n"},
		"Difference":           {args: []string{"eval", "difference", "[1..10]", "[3..4]"}, want: "{[1..2][5..10]}\n"},
		"SymmetricDifference":  {args: []string{"eval", "symmetric-difference", "[1..5]", "[3..8]"}, want: "{[1..2][6..8]}\n"},
		"Add":                  {args: []string{"eval", "add", "{[1..2][5..6]}", "{[1..1][4..5]}"}, want: "{[2..3][5..7][9..11]}\n"},
		"Complement8":          {args: []string{"eval", "--bits", "8", "complement", "[-100..100]"}, want: "{[-127..-101][101..127]}\n"},
		"ComplementUnsigned":   {args: []string{"eval", "--bits", "8", "--unsigned", "complement", "[0..9]"}, want: "[10..254]\n"},
		"Size":                 {args: []string{"eval", "size", "{[1..2][5..6]}"}, want: "4\n"},
		"Count":                {args: []string{"eval", "count", "{[1..2][5..6]}"}, want: "2\n"},
		"Span":                 {args: []string{"eval", "span", "{[1..2][5..6]}"}, want: "[1..6]\n"},
		"Lower":                {args: []string{"eval", "lower", "{[1..2][5..6]}"}, want: "1\n"},
		"Upper":                {args: []string{"eval", "upper", "{[1..2][5..6]}"}, want: "6\n"},
		"LowerEmpty":           {args: []string{"eval", "lower", "{}"}, wantErr: true},
		"Normalize":            {args: []string{"eval", "normalize", "[5..6], [1..2] [3..3]"}, want: "[1..6]\n"},
		"Subset":               {args: []string{"eval", "subset", "{[3..3][7..8]}", "[3..8]"}, want: "true\n"},
		"Entail":               {args: []string{"eval", "entail", "[6..9]", "{[4..6][8..10]}"}, want: "unknown\n"},
		"Contains":             {args: []string{"eval", "contains", "{[1..2][5..6]}", "4"}, want: "false\n"},
		"ShrinkLeft":           {args: []string{"eval", "shrink-left", "{[4..5][8..8]}", "5"}, want: "{[5..5][8..8]}\n"},
		"NegativeValue":        {args: []string{"eval", "--", "mul-value", "{[1..1][3..5]}", "-2"}, want: "{[-10..-6][-2..-2]}\n"},
		"UnknownOperation":     {args: []string{"eval", "frobnicate", "[1..2]", "[3..4]"}, wantErr: true},
		"WrongArity":           {args: []string{"eval", "complement", "[1..2]", "[3..4]"}, wantErr: true},
		"InvalidSet":           {args: []string{"eval", "union", "[1..2", "[3..4]"}, wantErr: true},
		"AddValueSaturates":    {args: []string{"eval", "--bits", "8", "--unsigned", "add-value", "{[240..245][250..252]}", "10"}, want: "[250..254]\n"},
		"SubSaturates":         {args: []string{"eval", "--bits", "8", "--unsigned", "sub", "[0..3]", "[1..1]"}, want: "[0..2]\n"},
		"ValueAboveMax":        {args: []string{"eval", "--bits", "8", "--unsigned", "contains", "[1..2]", "255"}, wantErr: true},
		"SetBelowMin":          {args: []string{"eval", "--bits", "8", "complement", "[-128..0]"}, wantErr: true},
		"OutOfRange":           {args: []string{"eval", "--bits", "8", "union", "[1..200]", "[3..4]"}, wantErr: true},
		"InvalidBits":          {args: []string{"eval", "--bits", "12", "union", "[1..2]", "[3..4]"}, wantErr: true},
		"InvalidOutput":        {args: []string{"eval", "-o", "xml", "union", "[1..2]", "[3..4]"}, wantErr: true},
		"InvalidLogLevel":      {args: []string{"eval", "--log-level", "loud", "union", "[1..2]", "[3..4]"}, wantErr: true},
		"JSON":                 {args: []string{"eval", "-o", "json", "union", "[1..2]", "[5..6]"}, want: "[[1,2],[5,6]]\n"},
		"JSONEmpty":            {args: []string{"eval", "-o", "json", "intersection", "[1..2]", "[5..6]"}, want: "null\n"},
		"JSONKleene":           {args: []string{"eval", "-o", "json", "entail", "{}", "[5..6]"}, want: "\"true\"\n"},
		"YAML":                 {args: []string{"eval", "-o", "yaml", "union", "[1..2]", "[5..6]"}, want: "- [1, 2]\n- [5, 6]\n"},
		"SixtyFourBitUnsigned": {args: []string{"eval", "--bits", "64", "--unsigned", "size", "[0..18446744073709551614]"}, want: "18446744073709551615\n"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := run(t, tc.args...)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isetctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bits: 8\nunsigned: true\noutput: json\n"), 0o600))

	got, err := run(t, "eval", "--config", path, "complement", "[0..9]")
	require.NoError(t, err)
	assert.Equal(t, "[[10,254]]\n", got)

	// flags win over the config file
	got, err = run(t, "eval", "--config", path, "-o", "text", "complement", "[0..9]")
	require.NoError(t, err)
	assert.Equal(t, "[10..254]\n", got)

	_, err = run(t, "eval", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "size", "[1..2]")
	assert.Error(t, err)
}

func TestEnv(t *testing.T) {
	t.Setenv("ISETCTL_BITS", "16")
	t.Setenv("ISETCTL_OUTPUT", "yaml")

	got, err := run(t, "eval", "complement", "[-32767..0]")
	require.NoError(t, err)
	assert.Equal(t, "- [1, 32767]\n", got)
}

func TestOps(t *testing.T) {
	got, err := run(t, "ops")
	require.NoError(t, err)
	for _, name := range operationNames() {
		assert.Contains(t, got, name)
	}
	assert.Contains(t, got, "A VALUE")
}

func TestEvaluate(t *testing.T) {
	res, err := evaluate[int32]("union", []string{"[1..2]", "[3..4]"})
	require.NoError(t, err)
	assert.True(t, intervalset.New[int32](1, 4).Equal(res.(intervalset.IntervalSet[int32])))

	res, err = evaluate[uint16]("entail", []string{"[1..2]", "[1..4]"})
	require.NoError(t, err)
	assert.Equal(t, intervalset.True, res)

	_, err = evaluate[uint16]("contains", []string{"[1..2]", "x"})
	assert.ErrorIs(t, err, intervalset.ErrInvalidFormat)
}
