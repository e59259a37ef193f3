// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package config

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	Scrub Scrub `mapstructure:"scrub,omitempty"`
	Audit Audit `mapstructure:"audit,omitempty" mask:"struct"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Scrub configuration settings.
type Scrub struct {
	// OutputDir receives cleaned copies; empty writes next to each source.
	OutputDir string `mapstructure:"output_dir"`
	// Workers overrides the batch pool size; 0 sizes from the host CPUs.
	Workers int `mapstructure:"workers" validate:"gte=0,lte=64"`
}

// Audit configuration settings for the metadata change log.
type Audit struct {
	// Enabled toggles audit logging of scrub operations.
	Enabled bool `mapstructure:"enabled"`
	// Path of the audit log file; empty generates a dated name next to
	// the scrubbed files.
	Path string `mapstructure:"path" validate:"omitempty,logpath"`
	// Encrypted selects encrypted-at-rest logging.
	Encrypted bool `mapstructure:"encrypted"`
	// Password unlocks the encrypted log. Prefer the
	// METASCRUB_AUDIT_PASSWORD environment variable over the file.
	Password string `mapstructure:"password" mask:"password"`
	// Cipher is the AEAD engine: "aes-gcm" (default) or "chacha20poly1305".
	Cipher string `mapstructure:"cipher"   validate:"omitempty,oneof=aes-gcm chacha20poly1305"`
}
