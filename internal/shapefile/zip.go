package shapefile

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// members are the shapefile sidecar extensions pulled out of an archive.
var members = map[string]bool{
	".shp": true,
	".shx": true,
	".dbf": true,
	".prj": true,
	".cpg": true,
}

// extractArchive unpacks the shapefile members of a TIGER/Line style ZIP
// into destDir and returns the path of the single .shp it contains.
// Other entries are ignored and nested folders are flattened.
func extractArchive(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", eris.Wrap(err, "shapefile: open archive")
	}
	defer r.Close() //nolint:errcheck

	var shpPaths []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Base(f.Name)
		ext := strings.ToLower(filepath.Ext(name))
		if !members[ext] {
			continue
		}
		if strings.Contains(f.Name, "..") {
			return "", eris.Errorf("shapefile: archive entry %q escapes destination", f.Name)
		}

		dest := filepath.Join(destDir, name)
		if err := copyEntry(f, dest); err != nil {
			return "", err
		}
		if ext == ".shp" {
			shpPaths = append(shpPaths, dest)
		}
	}

	switch len(shpPaths) {
	case 0:
		return "", eris.New("shapefile: no .shp file found in archive")
	case 1:
		return shpPaths[0], nil
	default:
		return "", eris.Errorf("shapefile: expected one .shp file in archive, found %d", len(shpPaths))
	}
}

func copyEntry(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return eris.Wrapf(err, "shapefile: open entry %s", f.Name)
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(dest)
	if err != nil {
		return eris.Wrap(err, "shapefile: create member file")
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close() //nolint:errcheck,gosec
		return eris.Wrapf(err, "shapefile: extract %s", f.Name)
	}
	if err := out.Close(); err != nil {
		return eris.Wrap(err, "shapefile: close member file")
	}
	return nil
}
