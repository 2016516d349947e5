/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package zconfig

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"golang.org/x/sync/singleflight"
)

const (
	envPrefix       = "ZYGOTE"
	defaultBaseName = "zygote"
	defaultHomeDir  = ".config/zygote"
)

// Loader resolves a Config from defaults, ZYGOTE_* environment variables
// and an optional config file, the way nabbar-golib's viper wrapper layers
// environment, file and default sources - narrowed here to exactly one
// config shape instead of an arbitrary caller-supplied struct.
type Loader struct {
	v            *viper.Viper
	configFile   string
	homeBaseName string
	sf           singleflight.Group
}

// NewLoader builds a Loader pre-seeded with Default()'s values, so any
// field neither the environment nor a config file sets still resolves to
// something valid.
func NewLoader(opts ...LoaderOption) *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("process_strategy", string(d.ProcessStrategy))
	v.SetDefault("read_limit", d.ReadLimit)
	v.SetDefault("rlimit_nofile", d.RlimitNoFile)
	v.SetDefault("scm_batch_size", d.SCMBatchSize)
	v.SetDefault("log_level", d.LogLevel)

	l := &Loader{v: v, homeBaseName: defaultBaseName}
	for _, o := range opts {
		o(l)
	}
	return l
}

// LoaderOption configures a Loader before its first Load call.
type LoaderOption func(*Loader)

// WithConfigFile pins an explicit config file path, bypassing the
// ~/.config/zygote/zygote.yaml default search.
func WithConfigFile(path string) LoaderOption {
	return func(l *Loader) { l.configFile = path }
}

// resolveConfigFile mirrors nabbar-golib's SetConfigFile(""): an empty
// explicit path falls back to go-homedir's resolved home directory plus
// the package's own base name.
func (l *Loader) resolveConfigFile() (string, error) {
	if l.configFile != "" {
		return l.configFile, nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("zconfig: cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultHomeDir, l.homeBaseName+".yaml"), nil
}

// Load reads the config file (if present - a missing file at the default
// path is not an error, only a missing *explicit* path is) and environment
// variables, unmarshals into a Config, and validates it.
//
// Concurrent callers collapse onto a single underlying read via
// singleflight: Load is typically called both from application startup and
// from a WatchLogLevel callback racing a manual reload, and there is no
// reason for both to hit viper's file read and validation at once.
func (l *Loader) Load() (Config, error) {
	v, err, _ := l.sf.Do("load", func() (interface{}, error) {
		return l.load()
	})
	if err != nil {
		return Config{}, err
	}
	return v.(Config), nil
}

func (l *Loader) load() (Config, error) {
	path, err := l.resolveConfigFile()
	if err != nil {
		return Config{}, err
	}

	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && l.configFile != "" {
			return Config{}, fmt.Errorf("zconfig: reading %s: %w", path, err)
		}
	}

	var c Config
	if err := l.v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("zconfig: unmarshal: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WatchLogLevel arranges for onChange to be called with the new log level
// string every time the resolved config file changes on disk, via the
// fsnotify watch viper.WatchConfig installs. Only the log level is passed
// to onChange; the other Config fields are not reported by the watch.
func (l *Loader) WatchLogLevel(onChange func(level string)) {
	l.v.OnConfigChange(func(_ fsnotify.Event) {
		onChange(l.v.GetString("log_level"))
	})
	l.v.WatchConfig()
}
