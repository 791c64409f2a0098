package features

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geoprep/internal/dataerr"
)

// DistinctOutput fails when out names the same file as in, either by path or
// through a link. Inputs are never overwritten.
func DistinctOutput(in, out string) error {
	same := func() error {
		return dataerr.New(dataerr.WriteFailure, out, eris.Errorf("features: output would overwrite input %s", in))
	}

	absIn, errIn := filepath.Abs(in)
	absOut, errOut := filepath.Abs(out)
	if errIn == nil && errOut == nil && absIn == absOut {
		return same()
	}

	inInfo, err := os.Stat(in)
	if err != nil {
		return nil
	}
	outInfo, err := os.Stat(out)
	if err != nil {
		return nil
	}
	if os.SameFile(inInfo, outInfo) {
		return same()
	}
	return nil
}
