package cmd

import (
	"math/big"
	"strings"

	"github.com/PolarWolf314/joesrsa/internal/utils"
)

// bigIntValue is a pflag.Value holding an arbitrary-precision integer.
// Input may be decimal or 0x-prefixed hex. The target stays nil until
// the flag is given, so commands can tell "unset" from any real value.
type bigIntValue struct {
	target **big.Int
}

func newBigIntValue(target **big.Int) *bigIntValue {
	return &bigIntValue{target: target}
}

func (v *bigIntValue) Set(s string) error {
	n, err := utils.ParseBigInt(s)
	if err != nil {
		return err
	}
	*v.target = n
	return nil
}

func (v *bigIntValue) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	return (*v.target).String()
}

func (v *bigIntValue) Type() string {
	return "bigint"
}

// bigIntSliceValue is a pflag.Value holding a list of arbitrary-precision
// integers. Values may be comma-separated or the flag repeated.
type bigIntSliceValue struct {
	target *[]*big.Int
}

func newBigIntSliceValue(target *[]*big.Int) *bigIntSliceValue {
	return &bigIntSliceValue{target: target}
}

func (v *bigIntSliceValue) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		n, err := utils.ParseBigInt(part)
		if err != nil {
			return err
		}
		*v.target = append(*v.target, n)
	}
	return nil
}

func (v *bigIntSliceValue) String() string {
	if v.target == nil || len(*v.target) == 0 {
		return ""
	}
	parts := make([]string, len(*v.target))
	for i, n := range *v.target {
		parts[i] = n.String()
	}
	return strings.Join(parts, ",")
}

func (v *bigIntSliceValue) Type() string {
	return "bigints"
}
