package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/nafig/pkg/errors"
)

// LoadOptions reads a TOML options file on top of base. Keys absent from the
// file keep their value from base. Unknown keys are rejected, as are numeric
// options explicitly set below their minimum. A relative hue_file is resolved
// against the options file's directory.
//
//	num_bins = 20
//	remove = "trailing"
//	title = "Survey missingness"
//	formats = ["png", "json"]
//
//	[hue]
//	age = "demographic"
//	income = "financial"
func LoadOptions(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return base, errors.Wrap(errors.ErrCodeFileNotFound, err, "options file %s", path)
	}
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidPath, err, "read options file %s", path)
	}

	opts := base
	md, err := toml.Decode(string(data), &opts)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse options file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return base, errors.New(errors.ErrCodeInvalidFormat, "unknown keys in %s: %v", path, keys)
	}

	if err := ValidateExplicit(opts, func(key string) bool { return md.IsDefined(key) }); err != nil {
		return base, fmt.Errorf("options file %s: %w", path, err)
	}

	if md.IsDefined("hue_file") && opts.HueFile != "" && !filepath.IsAbs(opts.HueFile) {
		opts.HueFile = filepath.Join(filepath.Dir(path), opts.HueFile)
	}
	return opts, nil
}
