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

package zconfig_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/zygote/zconfig"
)

var _ = Describe("Config", func() {
	Describe("Default", func() {
		It("is valid on its own", func() {
			Expect(zconfig.Default().Validate()).ToNot(HaveOccurred())
		})
	})

	Describe("Validate", func() {
		It("rejects an out-of-range SCM batch size", func() {
			c := zconfig.Default()
			c.SCMBatchSize = 300
			Expect(c.Validate()).To(HaveOccurred())
		})

		It("rejects a negative read limit", func() {
			c := zconfig.Default()
			c.ReadLimit = -1
			Expect(c.Validate()).To(HaveOccurred())
		})

		It("rejects an unknown process strategy", func() {
			c := zconfig.Default()
			c.ProcessStrategy = "fork-and-pray"
			Expect(c.Validate()).To(HaveOccurred())
		})

		It("accepts every documented strategy", func() {
			for _, s := range []zconfig.Strategy{zconfig.StrategyAuto, zconfig.StrategyClone3, zconfig.StrategyClone} {
				c := zconfig.Default()
				c.ProcessStrategy = s
				Expect(c.Validate()).ToNot(HaveOccurred())
			}
		})
	})

	Describe("Merge", func() {
		It("overlays only the non-zero fields", func() {
			base := zconfig.Default()
			override := zconfig.Config{LogLevel: "debug"}

			merged := base.Merge(override)

			Expect(merged.LogLevel).To(Equal("debug"))
			Expect(merged.SCMBatchSize).To(Equal(base.SCMBatchSize))
		})
	})
})

var _ = Describe("Loader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "zconfig-test-*")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(tempDir)).ToNot(HaveOccurred())
	})

	Context("with no config file present", func() {
		It("falls back to defaults", func() {
			// Only a missing file at the default location is tolerated (a
			// missing explicit path is an error), so point the home
			// directory at the empty temp dir and use the default path.
			DeferCleanup(os.Setenv, "HOME", os.Getenv("HOME"))
			Expect(os.Setenv("HOME", tempDir)).To(Succeed())
			l := zconfig.NewLoader()
			c, err := l.Load()
			Expect(err).ToNot(HaveOccurred())
			Expect(c.LogLevel).To(Equal(zconfig.Default().LogLevel))
		})
	})

	Context("with a YAML config file", func() {
		var path string

		BeforeEach(func() {
			path = filepath.Join(tempDir, "zygote.yaml")
			Expect(os.WriteFile(path, []byte("log_level: debug\nscm_batch_size: 64\n"), 0o644)).To(Succeed())
		})

		It("loads and validates the file's values", func() {
			l := zconfig.NewLoader(zconfig.WithConfigFile(path))
			c, err := l.Load()
			Expect(err).ToNot(HaveOccurred())
			Expect(c.LogLevel).To(Equal("debug"))
			Expect(c.SCMBatchSize).To(Equal(64))
		})

		It("rejects a file with an invalid value", func() {
			Expect(os.WriteFile(path, []byte("scm_batch_size: 9000\n"), 0o644)).To(Succeed())
			l := zconfig.NewLoader(zconfig.WithConfigFile(path))
			_, err := l.Load()
			Expect(err).To(HaveOccurred())
		})

		It("calls back with the new log level on file change", func() {
			l := zconfig.NewLoader(zconfig.WithConfigFile(path))
			_, err := l.Load()
			Expect(err).ToNot(HaveOccurred())

			levels := make(chan string, 1)
			l.WatchLogLevel(func(level string) { levels <- level })

			Expect(os.WriteFile(path, []byte("log_level: warn\n"), 0o644)).To(Succeed())

			Eventually(levels, 5*time.Second).Should(Receive(Equal("warn")))
		})
	})
})
