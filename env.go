// env.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements environment bootstrap (component N): resolving
// the image/dawg file paths and cache size from environment variables,
// optionally loaded from a ".env" file.

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package binpack

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds the resolved runtime configuration for opening a
// Dictionary: where its backing files live and how large its caches
// should be.
type Env struct {
	ImagePath        string
	CompoundDawgPath string
	PrefixDawgPath   string
	SuffixDawgPath   string
	ConfigPath       string
	CacheSize        int
}

// LoadEnv loads a ".env" file if present (a missing file is not an
// error: godotenv.Load's error is discarded, so variables set in the
// environment another way are used as they are) and
// resolves BINPACK_* environment variables into an Env, applying
// defaults for anything unset.
func LoadEnv() Env {
	_ = godotenv.Load()
	e := Env{
		ImagePath:        getenvDefault("BINPACK_IMAGE_PATH", "compressed.bin"),
		CompoundDawgPath: getenvDefault("BINPACK_DAWG_PATH", "compound-dawg.bin"),
		PrefixDawgPath:   os.Getenv("BINPACK_PREFIX_DAWG_PATH"),
		SuffixDawgPath:   os.Getenv("BINPACK_SUFFIX_DAWG_PATH"),
		ConfigPath:       os.Getenv("BINPACK_CONFIG_PATH"),
		CacheSize:        LFUDefault,
	}
	if v := os.Getenv("BINPACK_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			e.CacheSize = n
		}
	}
	return e
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Open opens the Image and, best-effort, the compound/prefix/suffix
// DAWGs and Settings named by e, returning a ready-to-use Dictionary.
// A missing compound DAWG or config file is not an error: the
// resulting Dictionary simply skips that fallback.
func (e Env) Open() (*Dictionary, func(), error) {
	img, err := OpenImage(e.ImagePath)
	if err != nil {
		return nil, func() {}, err
	}
	closers := []func() error{img.Close}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	var compounder *Compounder
	if all, err := OpenDawg(e.CompoundDawgPath); err == nil {
		closers = append(closers, all.Close)
		var prefixes, suffixes *Dawg
		if e.PrefixDawgPath != "" {
			if p, err := OpenDawg(e.PrefixDawgPath); err == nil {
				prefixes = p
				closers = append(closers, p.Close)
			}
		}
		if e.SuffixDawgPath != "" {
			if s, err := OpenDawg(e.SuffixDawgPath); err == nil {
				suffixes = s
				closers = append(closers, s.Close)
			}
		}
		compounder = NewCompounder(all, prefixes, suffixes)
	}

	var settings *Settings
	if e.ConfigPath != "" {
		if s, err := ReadSettings(e.ConfigPath); err == nil {
			settings = s
		}
	}

	engine := NewEngine(img, e.CacheSize)
	return NewDictionary(engine, compounder, settings), closeAll, nil
}
