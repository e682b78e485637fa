package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/hdkit/internal/output"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

const (
	testPubKey   = "03c41826497a000dd077b3becc10bea5765651c30c37e7bd63ed8562f919720126"
	testBIP39    = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testLegacy   = "powerful random nobody notice nothing important anyway look away hidden message over"
	testEntropy  = "acb740e454c3134901d7c8f16497cc1c"
	testEthAddr0 = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
	testEthAddr1 = "0x6Fac4D18c912343BF86fa7049364Dd4E424Ab9C0"
)

type cliResult struct {
	stdout string
	stderr string
	code   int
}

// runCLI executes hdkit with an isolated home directory.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--home", t.TempDir()}, args...)
	code := Run(full, strings.NewReader(stdin), &stdout, &stderr)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func decodeJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func requireErrorCode(t *testing.T, res cliResult, code string, exit int) output.ErrorDetail {
	t.Helper()
	require.Equal(t, exit, res.code, res.stderr)
	out := decodeJSON[output.ErrorOutput](t, res.stderr)
	assert.Equal(t, code, out.Error.Code)
	return out.Error
}

func TestPathParse(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "", "path", "parse", "m/44'/60p/0'/0/7/")
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)

	got := decodeJSON[PathResult](t, res.stdout)
	assert.Equal(t, "m/44'/60'/0'/0/7", got.Path)
	assert.True(t, got.Valid)
	assert.Equal(t, 5, got.Depth)
	assert.Equal(t, []uint32{0x8000002c, 0x8000003c, 0x80000000, 0, 7}, got.Indices)
	require.Len(t, got.Elements, 5)
	assert.True(t, got.Elements[1].Hardened)
	require.NotNil(t, got.Elements[4].Index)
	assert.Equal(t, uint32(7), *got.Elements[4].Index)
}

func TestPathParse_InvalidElement(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "", "path", "parse", "m/44'/abc/0")
	require.Equal(t, kiterr.ExitSuccess, res.code)
	got := decodeJSON[PathResult](t, res.stdout)
	assert.False(t, got.Valid)
	assert.Equal(t, "m/44'/?/0", got.Path)
	assert.Nil(t, got.Indices)
	assert.Nil(t, got.Elements[1].Index)

	strict := runCLI(t, "", "path", "parse", "--strict", "m/44'/abc/0")
	detail := requireErrorCode(t, strict, "INVALID_PATH_ELEMENT", kiterr.ExitInput)
	assert.Equal(t, "1", detail.Details["position"])
}

func TestPathParse_Text(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "", "-o", "text", "path", "parse", "m/0'/1")
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Path: m/0'/1 (valid, depth 2)")
	assert.Contains(t, res.stdout, "POS  ELEMENT  INDEX       HARDENED")
	assert.Contains(t, res.stdout, "0    0'       2147483648  true")
}

func TestPathParse_TooDeep(t *testing.T) {
	t.Parallel()
	cfgPath := writeConfig(t, "derivation:\n  max_depth: 2\n")

	res := runCLI(t, "", "--config", cfgPath, "path", "parse", "m/1/2/3")
	detail := requireErrorCode(t, res, "PATH_TOO_DEEP", kiterr.ExitInput)
	assert.Equal(t, "3", detail.Details["depth"])
	assert.Equal(t, "2", detail.Details["max"])
}

func TestAddrEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"eth", []string{"--chain", "eth"}, "0x4d46542bdA7ff01f583e8459125c91D56D2426Cf"},
		{"eth lowercase", []string{"--chain", "eth", "--skip-checksum"}, "0x4d46542bda7ff01f583e8459125c91d56d2426cf"},
		{"p2pkh default", []string{"--chain", "p2pkh"}, "16FWy41HaMbfZtq3m8TGdb8Bh4g1HCKnJV"},
		{"p2pkh testnet", []string{"--chain", "p2pkh", "--net-ver", "6f"}, "mkmUG76GPP2vM1JfUhReTWLWZ4GiG9J59f"},
		{"p2wpkh", []string{"-c", "P2WPKH"}, "bc1q8xth0ykvqf542ht0prckzp9ykq9zvu83ha5wvd"},
		{"atom", []string{"--chain", "atom"}, "cosmos18xth0ykvqf542ht0prckzp9ykq9zvu83p829gq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args := append([]string{"addr", "encode"}, tt.args...)
			res := runCLI(t, "", append(args, testPubKey)...)
			require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)

			got := decodeJSON[AddressResult](t, res.stdout)
			assert.Equal(t, tt.want, got.Address)
			assert.Equal(t, "secp256k1", got.Curve)
			assert.Equal(t, testPubKey, got.PublicKey)
		})
	}
}

func TestAddrEncode_ConfigOverride(t *testing.T) {
	t.Parallel()
	cfgPath := writeConfig(t, "chains:\n  p2pkh:\n    net_ver: \"6f\"\n")

	res := runCLI(t, "", "--config", cfgPath, "-o", "text", "addr", "encode", "--chain", "p2pkh", testPubKey)
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "mkmUG76GPP2vM1JfUhReTWLWZ4GiG9J59f\n", res.stdout)
}

func TestAddrEncode_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing option", func(t *testing.T) {
		t.Parallel()
		res := runCLI(t, "", "addr", "encode", "--chain", "atom", "--bare", testPubKey)
		detail := requireErrorCode(t, res, "MISSING_OPTION", kiterr.ExitConfig)
		assert.Equal(t, "hrp", detail.Details["option"])
		assert.NotEmpty(t, detail.Suggestion)
	})

	t.Run("secp key for ed25519 chain", func(t *testing.T) {
		t.Parallel()
		res := runCLI(t, "", "addr", "encode", "--chain", "solana", testPubKey)
		requireErrorCode(t, res, "INVALID_PUBLIC_KEY", kiterr.ExitInput)
	})

	t.Run("unsupported chain", func(t *testing.T) {
		t.Parallel()
		res := runCLI(t, "", "addr", "encode", "--chain", "doge", testPubKey)
		detail := requireErrorCode(t, res, "UNSUPPORTED_CHAIN", kiterr.ExitInput)
		assert.Contains(t, detail.Suggestion, "p2wpkh")
	})

	t.Run("not hex", func(t *testing.T) {
		t.Parallel()
		res := runCLI(t, "", "addr", "encode", "--chain", "eth", "zz")
		requireErrorCode(t, res, "INVALID_PUBLIC_KEY", kiterr.ExitInput)
	})

	t.Run("bad flag", func(t *testing.T) {
		t.Parallel()
		res := runCLI(t, "", "addr", "encode", "--nope")
		require.Equal(t, kiterr.ExitInput, res.code)
		assert.True(t, strings.HasPrefix(res.stderr, "Error: invalid input: unknown flag: --nope"), res.stderr)
	})
}

func TestAddrDecode(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "", "addr", "decode", "--chain", "p2wpkh", "bc1q8xth0ykvqf542ht0prckzp9ykq9zvu83ha5wvd")
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
	got := decodeJSON[DecodedAddress](t, res.stdout)
	assert.Equal(t, "39977792cc0269555d6f08f16104a4b00a2670f1", got.Payload)

	bad := runCLI(t, "", "addr", "decode", "--chain", "p2wpkh", "bc1q8xth0ykvqf542ht0prckzp9ykq9zvu83ha5wvx")
	require.Equal(t, kiterr.ExitInput, bad.code)
}

func TestAddrChains(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "", "addr", "chains")
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
	got := decodeJSON[ChainList](t, res.stdout)
	require.Len(t, got, 7)

	byName := map[string]ChainInfo{}
	for _, c := range got {
		byName[c.Chain] = c
	}
	assert.Equal(t, "ed25519", byName["solana"].Curve)
	assert.Equal(t, []string{"net_ver"}, byName["p2pkh"].Required)
	assert.Empty(t, byName["eth"].Required)
}

func TestMnemonicDecode(t *testing.T) {
	t.Parallel()

	res := runCLI(t, testLegacy+"\n", "mnemonic", "decode")
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
	got := decodeJSON[DecodedMnemonic](t, res.stdout)
	assert.Equal(t, testEntropy, got.Entropy)
	assert.Equal(t, "english", got.Language)
	assert.Equal(t, 12, got.WordCount)

	fixed := runCLI(t, strings.ToUpper(testLegacy), "-o", "text", "mnemonic", "decode", "--lang", "English")
	require.Equal(t, kiterr.ExitSuccess, fixed.code, fixed.stderr)
	assert.Equal(t, testEntropy+"\n", fixed.stdout)
}

func TestMnemonicDecode_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown word", func(t *testing.T) {
		t.Parallel()
		phrase := strings.Replace(testLegacy, "nobody", "nobodi", 1)
		res := runCLI(t, phrase, "mnemonic", "decode", "--lang", "english")
		detail := requireErrorCode(t, res, "UNKNOWN_WORD", kiterr.ExitInput)
		assert.Equal(t, "3", detail.Details["position"])
		assert.Equal(t, `did you mean "nobody"?`, detail.Suggestion)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		phrase := strings.Replace(testLegacy, "nobody", "nobodi", 1)
		res := runCLI(t, phrase, "mnemonic", "decode")
		requireErrorCode(t, res, "LANGUAGE_NOT_FOUND", kiterr.ExitInput)
	})

	t.Run("word count", func(t *testing.T) {
		t.Parallel()
		res := runCLI(t, "powerful random nobody", "mnemonic", "decode")
		requireErrorCode(t, res, "INVALID_WORD_COUNT", kiterr.ExitInput)
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()
		res := runCLI(t, testLegacy, "mnemonic", "decode", "--lang", "klingon")
		requireErrorCode(t, res, "UNKNOWN_LANGUAGE", kiterr.ExitNotFound)
	})

	t.Run("empty stdin", func(t *testing.T) {
		t.Parallel()
		res := runCLI(t, "", "mnemonic", "decode")
		requireErrorCode(t, res, "INVALID_INPUT", kiterr.ExitInput)
	})
}

func TestMnemonicEncode(t *testing.T) {
	t.Parallel()

	res := runCLI(t, testEntropy, "-o", "text", "mnemonic", "encode")
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
	assert.Equal(t, testLegacy+"\n", res.stdout)

	bad := runCLI(t, "abcd", "mnemonic", "encode")
	requireErrorCode(t, bad, "INVALID_ENTROPY", kiterr.ExitInput)
}

func TestMnemonicLanguages(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "", "mnemonic", "languages")
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
	got := decodeJSON[LanguageList](t, res.stdout)
	assert.Contains(t, got, LanguageInfo{Language: "english", Words: 1626})
}

func TestDerive(t *testing.T) {
	t.Parallel()

	res := runCLI(t, testBIP39+"\n", "derive")
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, testEthAddr0, got["address"])
	assert.Equal(t, "m/44'/60'/0'/0/0", got["path"])
	assert.Equal(t, "eth", got["chain"])

	btc := runCLI(t, testBIP39, "-o", "text", "derive", "--chain", "p2pkh", "--path", "m/44'/0'/0'/0/0")
	require.Equal(t, kiterr.ExitSuccess, btc.code, btc.stderr)
	assert.Equal(t, "m/44'/0'/0'/0/0  1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA\n", btc.stdout)
}

func TestDerive_Xpub(t *testing.T) {
	t.Parallel()

	res := runCLI(t, testBIP39, "-o", "text", "derive", "--xpub-only", "--path", "m/44'/60'/0'")
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
	xpub := strings.TrimSpace(res.stdout)
	assert.True(t, strings.HasPrefix(xpub, "xpub6DCoCpSuQZB2"), xpub)

	watch := runCLI(t, "", "-o", "text", "derive", "--xpub", xpub, "--path", "m/0/1")
	require.Equal(t, kiterr.ExitSuccess, watch.code, watch.stderr)
	assert.Contains(t, watch.stdout, testEthAddr1)
}

func TestDerive_Errors(t *testing.T) {
	t.Parallel()

	curve := runCLI(t, testBIP39, "derive", "--chain", "solana", "--path", "m/44'/501'/0'")
	requireErrorCode(t, curve, "WRONG_CURVE", kiterr.ExitInput)

	checksum := runCLI(t, strings.Replace(testBIP39, "about", "abandon", 1), "derive")
	requireErrorCode(t, checksum, "INVALID_CHECKSUM", kiterr.ExitInput)

	deep := writeConfig(t, "derivation:\n  max_depth: 3\n")
	tooDeep := runCLI(t, testBIP39, "--config", deep, "derive")
	requireErrorCode(t, tooDeep, "PATH_TOO_DEEP", kiterr.ExitInput)

	passphrase := runCLI(t, testBIP39+"\nTREZOR\n", "derive", "--passphrase")
	require.Equal(t, kiterr.ExitSuccess, passphrase.code, passphrase.stderr)
	assert.NotContains(t, passphrase.stdout, testEthAddr0)
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()
	home := t.TempDir()

	run := func(args ...string) cliResult {
		var stdout, stderr bytes.Buffer
		code := Run(append([]string{"--home", home}, args...), strings.NewReader(""), &stdout, &stderr)
		return cliResult{stdout.String(), stderr.String(), code}
	}

	path := run("config", "path")
	require.Equal(t, kiterr.ExitSuccess, path.code)
	assert.Equal(t, filepath.Join(home, "config.yaml")+"\n", path.stdout)

	initRes := run("config", "init")
	require.Equal(t, kiterr.ExitSuccess, initRes.code, initRes.stderr)
	_, err := os.Stat(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)

	again := run("config", "init")
	require.Equal(t, kiterr.ExitGeneral, again.code)
	require.Equal(t, kiterr.ExitSuccess, run("config", "init", "--force").code)

	show := run("config", "show")
	require.Equal(t, kiterr.ExitSuccess, show.code, show.stderr)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(show.stdout), &cfg))
	assert.Equal(t, home, cfg["home"])

	text := run("-o", "text", "config", "show")
	assert.Contains(t, text.stdout, "max_depth: 255")
}

func TestConfigErrors(t *testing.T) {
	t.Parallel()

	missing := runCLI(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "version")
	require.Equal(t, kiterr.ExitNotFound, missing.code)
	assert.Contains(t, missing.stderr, "configuration file not found")

	broken := writeConfig(t, "output: [\n")
	res := runCLI(t, "", "--config", broken, "version")
	require.Equal(t, kiterr.ExitConfig, res.code)

	badFormat := runCLI(t, "", "-o", "yaml", "version")
	require.Equal(t, kiterr.ExitConfig, badFormat.code)
	assert.Contains(t, badFormat.stderr, "output.default_format")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "", "version")
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
	got := decodeJSON[map[string]string](t, res.stdout)
	assert.NotEmpty(t, got["go_version"])
	assert.NotEmpty(t, got["version"])
}

func TestVerboseLogsToStderr(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "", "-v", "path", "parse", "m/0")
	require.Equal(t, kiterr.ExitSuccess, res.code)
	assert.Contains(t, res.stderr, "running hdkit path parse")
	assert.Contains(t, res.stderr, "parsed path m/0 with 1 elements")
}

func TestCompletion(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		res := runCLI(t, "", "completion", shell)
		require.Equal(t, kiterr.ExitSuccess, res.code, shell)
		assert.Contains(t, res.stdout, "hdkit", shell)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDerive_Count(t *testing.T) {
	t.Parallel()

	res := runCLI(t, testBIP39, "derive", "--path", "m/44'/60'/0'/0/0", "--count", "2")
	require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
	got := decodeJSON[[]map[string]string](t, res.stdout)
	require.Len(t, got, 2)
	assert.Equal(t, testEthAddr0, got[0]["address"])
	assert.Equal(t, testEthAddr1, got[1]["address"])
	assert.Equal(t, "m/44'/60'/0'/0/1", got[1]["path"])

	text := runCLI(t, testBIP39, "-o", "text", "derive", "-n", "2")
	require.Equal(t, kiterr.ExitSuccess, text.code, text.stderr)
	assert.Equal(t,
		"m/44'/60'/0'/0/0  "+testEthAddr0+"\nm/44'/60'/0'/0/1  "+testEthAddr1+"\n",
		text.stdout)

	bad := runCLI(t, testBIP39, "derive", "--count", "0")
	requireErrorCode(t, bad, "INVALID_INPUT", kiterr.ExitInput)
}

func TestMnemonicEncode_Random(t *testing.T) {
	t.Parallel()

	for _, words := range []int{12, 24} {
		res := runCLI(t, "", "mnemonic", "encode", "--random", "--words", strconv.Itoa(words))
		require.Equal(t, kiterr.ExitSuccess, res.code, res.stderr)
		got := decodeJSON[EncodedMnemonic](t, res.stdout)
		assert.Len(t, got.Words, words)

		back := runCLI(t, strings.Join(got.Words, " "), "mnemonic", "decode", "--lang", "english")
		require.Equal(t, kiterr.ExitSuccess, back.code, back.stderr)
		decoded := decodeJSON[DecodedMnemonic](t, back.stdout)
		assert.Len(t, decoded.Entropy, words/3*4*2)
	}

	bad := runCLI(t, "", "mnemonic", "encode", "--random", "--words", "15")
	requireErrorCode(t, bad, "INVALID_WORD_COUNT", kiterr.ExitInput)
}

func TestRun_ReleasesLoggerOnError(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "hdkit.log")
	cfgPath := writeConfig(t, "logging:\n  level: debug\n  file: "+logPath+"\n")

	a := &app{}
	var stdout, stderr bytes.Buffer
	args := []string{"--home", t.TempDir(), "--config", cfgPath, "addr", "encode", "--chain", "solana", testPubKey}
	code := a.run(args, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, kiterr.ExitInput, code, stderr.String())
	require.NotNil(t, a.ctx)

	a.ctx.Logger.Error("after run")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "running hdkit addr encode")
	assert.NotContains(t, string(data), "after run")
}
