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

// Strategy names a process-creation path a host prefers: "clone3",
// "clone", or "auto". It is a loaded and validated value only; process.New
// does not read it and always tries clone3 first, falling back to clone(2)
// on ENOSYS.
type Strategy string

const (
	StrategyAuto   Strategy = "auto"
	StrategyClone3 Strategy = "clone3"
	StrategyClone  Strategy = "clone"
)

// Config is the full set of knobs zconfig resolves, either from defaults,
// environment variables (ZYGOTE_*) or an optional config file.
type Config struct {
	// ProcessStrategy names the syscall a host prefers process.New to
	// attempt first. It is loaded and validated only; process.New does not
	// consult it.
	ProcessStrategy Strategy `mapstructure:"process_strategy" validate:"omitempty,oneof=auto clone3 clone"`

	// ReadLimit is a size bound in bytes for a single frame's payload (0
	// means unbounded). It is loaded and validated only; the socket and
	// pipe layers do not read it and accept a payload of any length.
	ReadLimit int64 `mapstructure:"read_limit" validate:"gte=0"`

	// RlimitNoFile is the RLIMIT_NOFILE soft limit a host can pass to
	// rlimit.RaiseFileDescriptor before opening many zygote handles (0
	// means "leave it alone"). Nothing in this module applies it.
	RlimitNoFile uint64 `mapstructure:"rlimit_nofile" validate:"gte=0"`

	// SCMBatchSize is a per-sendmsg descriptor batch size, at most
	// socket.SCMMaxFD. It is loaded and validated only; pipe.Send always
	// batches socket.SCMMaxFD descriptors per chunk.
	SCMBatchSize int `mapstructure:"scm_batch_size" validate:"gt=0,lte=253"`

	// LogLevel is the zlog level name (see zlog.Level). The one field a
	// running host may hot-reload via a watched config file.
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the Config a host gets when nothing overrides it.
func Default() Config {
	return Config{
		ProcessStrategy: StrategyAuto,
		ReadLimit:       0,
		RlimitNoFile:    0,
		SCMBatchSize:    253,
		LogLevel:        "info",
	}
}
