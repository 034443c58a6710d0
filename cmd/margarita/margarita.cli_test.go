package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args []string, stdin string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCLI_NoArgs_ShowsHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, nil, "")
	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, "margarita")
	assert.Contains(t, stdout, CmdNameRender)
}

func TestCLI_UnknownCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, []string{"bogus"}, "")
	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stdout, ErrMsgUnknownCommand)
}

func TestCLI_Render(t *testing.T) {
	dir := t.TempDir()

	t.Run("template file with inline context", func(t *testing.T) {
		tmpl := writeFile(t, dir, "greet.marg", "Hello, ${name}!")
		code, stdout, stderr := runCLI(t,
			[]string{"render", "-t", tmpl, "-c", `{"name":"World"}`}, "")
		assert.Equal(t, ExitCodeSuccess, code, stderr)
		assert.Equal(t, "Hello, World!", stdout)
	})

	t.Run("template from stdin", func(t *testing.T) {
		code, stdout, stderr := runCLI(t,
			[]string{"render", "-t", "-", "-c", `{"n":1}`}, "n=${n}")
		assert.Equal(t, ExitCodeSuccess, code, stderr)
		assert.Equal(t, "n=1", stdout)
	})

	t.Run("context file flag", func(t *testing.T) {
		tmpl := writeFile(t, dir, "ctxflag.marg", "${k}")
		ctxFile := writeFile(t, dir, "ctx.json", `{"k":"v"}`)
		code, stdout, _ := runCLI(t,
			[]string{"render", "-t", tmpl, "-f", ctxFile}, "")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "v", stdout)
	})

	t.Run("sibling json auto-discovery", func(t *testing.T) {
		tmpl := writeFile(t, dir, "auto.marg", "auto=${v}")
		writeFile(t, dir, "auto.marg.json", `{"v":"found"}`)
		code, stdout, _ := runCLI(t, []string{"render", "-t", tmpl}, "")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "auto=found", stdout)
	})

	t.Run("includes resolve against the template directory", func(t *testing.T) {
		writeFile(t, dir, "part.marg", "PART")
		tmpl := writeFile(t, dir, "main.marg", "x [[ part.marg ]] y")
		code, stdout, _ := runCLI(t, []string{"render", "-t", tmpl}, "")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "x PART y", stdout)
	})

	t.Run("show metadata", func(t *testing.T) {
		tmpl := writeFile(t, dir, "meta.marg", "---\ntitle: demo\n---\nbody")
		code, stdout, _ := runCLI(t,
			[]string{"render", "-t", tmpl, "-show-metadata"}, "")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Contains(t, stdout, "title: demo")
		assert.Contains(t, stdout, "body")
	})

	t.Run("output file", func(t *testing.T) {
		tmpl := writeFile(t, dir, "out.marg", "written")
		outPath := filepath.Join(dir, "result.txt")
		code, _, _ := runCLI(t,
			[]string{"render", "-t", tmpl, "-o", outPath}, "")
		assert.Equal(t, ExitCodeSuccess, code)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Equal(t, "written", string(data))
	})

	t.Run("lenient flag", func(t *testing.T) {
		tmpl := writeFile(t, dir, "lenient.marg", "a${missing}b")
		code, stdout, _ := runCLI(t,
			[]string{"render", "-t", tmpl, "-lenient"}, "")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "ab", stdout)
	})

	t.Run("missing template flag", func(t *testing.T) {
		code, _, stderr := runCLI(t, []string{"render"}, "")
		assert.Equal(t, ExitCodeUsageError, code)
		assert.NotEmpty(t, stderr)
	})

	t.Run("render failure exit code", func(t *testing.T) {
		tmpl := writeFile(t, dir, "bad.marg", "${missing}")
		code, _, stderr := runCLI(t, []string{"render", "-t", tmpl}, "")
		assert.Equal(t, ExitCodeError, code)
		assert.NotEmpty(t, stderr)
	})
}

func TestCLI_Metadata(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "m.marg", "---\ntitle: demo\ntags: [a, b]\n---\nbody")

	code, stdout, stderr := runCLI(t, []string{"metadata", "-t", tmpl}, "")
	assert.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Contains(t, stdout, "title: demo")
	assert.Contains(t, stdout, "tags: [a, b]")
	assert.NotContains(t, stdout, "body")
}

func TestCLI_Compose(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.marg", "first ${v}")
	writeFile(t, dir, "two.marg", "second")

	t.Run("joins snippets with a blank line", func(t *testing.T) {
		code, stdout, stderr := runCLI(t,
			[]string{"compose", "-b", dir, "-c", `{"v":"x"}`, "one.marg", "two.marg"}, "")
		assert.Equal(t, ExitCodeSuccess, code, stderr)
		assert.Equal(t, "first x\n\nsecond", stdout)
	})

	t.Run("no snippets is a usage error", func(t *testing.T) {
		code, _, _ := runCLI(t, []string{"compose", "-b", dir}, "")
		assert.Equal(t, ExitCodeUsageError, code)
	})

	t.Run("missing snippet fails the whole composition", func(t *testing.T) {
		code, stdout, _ := runCLI(t,
			[]string{"compose", "-b", dir, "one.marg", "nope.marg"}, "")
		assert.Equal(t, ExitCodeError, code)
		assert.Empty(t, stdout)
	})
}

func TestCLI_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, []string{"version"}, "")
	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, "margarita")
}

func TestCLI_HelpForCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, []string{"help", "render"}, "")
	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, "render")
}
