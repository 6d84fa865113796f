package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	// Create a temporary directory for test files
	tempDir, err := os.MkdirTemp("", "pyjson-test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// Create a test literal file
	literalContent := `{
	'name': 'John Doe',
	'age': 30,
	'scores': (0x10, 2.5, 1_000),
	'address': {
		'street': '123 Main St',
		'city': 'Anytown',
	},
	'active': True,
	'notes': None,
}`
	literalFile := filepath.Join(tempDir, "test.py")
	err = os.WriteFile(literalFile, []byte(literalContent), 0644)
	require.NoError(t, err)

	// Define output file path
	outputFile := filepath.Join(tempDir, "output.json")

	// Run the CLI command
	cmd := exec.Command("go", "run", "../../main.go", "-i", literalFile, "-o", outputFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	// Read the generated output file
	generated, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	// Verify the generated JSON
	json := string(generated)
	assert.Contains(t, json, `"name": "John Doe"`)
	assert.Contains(t, json, `"age": 30`)
	assert.Contains(t, json, `"street": "123 Main St"`)
	assert.Contains(t, json, `"active": true`)
	assert.Contains(t, json, `"notes": null`)
	// hex and underscore numbers come out in plain decimal
	assert.Contains(t, json, "16")
	assert.Contains(t, json, "1000")
	// file output ends with a trailing newline
	assert.True(t, strings.HasSuffix(json, "\n"))
}

// TestCLI_StdinStdout tests the CLI with stdin input and stdout output
func TestCLI_StdinStdout(t *testing.T) {
	literalContent := `{'name': 'Jane Smith', 'age': 25, 'active': True}`

	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(literalContent)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	expected := `{
    "name": "Jane Smith",
    "age": 25,
    "active": true
}
`
	assert.Equal(t, expected, stdout.String())
}

// TestCLI_Minify tests JSON passthrough with -m
func TestCLI_Minify(t *testing.T) {
	jsonContent := "{\n    \"a\": [1, 2],\n    \"b\": true\n}"

	cmd := exec.Command("go", "run", "../../main.go", "-m")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	assert.Equal(t, `{"a":[1,2],"b":true}`+"\n", stdout.String())
}

// TestCLI_Reformat tests JSON passthrough with -r
func TestCLI_Reformat(t *testing.T) {
	jsonContent := `{"b":1,"a":2}`

	cmd := exec.Command("go", "run", "../../main.go", "-r")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	// key order is preserved, not sorted
	assert.Equal(t, "{\n    \"b\": 1,\n    \"a\": 2\n}\n", stdout.String())
}

// TestCLI_IndentFlag tests a custom indent width
func TestCLI_IndentFlag(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-n", "2")
	cmd.Stdin = strings.NewReader(`{'a': 1}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"a\": 1\n}\n", stdout.String())
}

// TestCLI_SortKeys tests the --sort-keys flag
func TestCLI_SortKeys(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--sort-keys")
	cmd.Stdin = strings.NewReader(`{'b': 1, 'a': 2}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	output := stdout.String()
	assert.Less(t, strings.Index(output, `"a"`), strings.Index(output, `"b"`))
}

// TestCLI_KeyStyle tests the --keys flag
func TestCLI_KeyStyle(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--keys", "camel")
	cmd.Stdin = strings.NewReader(`{'user_name': 'alice'}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), `"userName"`)
}

// TestCLI_ConfigFile tests loading options from a config file
func TestCLI_ConfigFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "pyjson-test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	configFile := filepath.Join(tempDir, ".pyjson.yml")
	err = os.WriteFile(configFile, []byte("indent: 2\nsort_keys: true\n"), 0644)
	require.NoError(t, err)

	cmd := exec.Command("go", "run", "../../main.go", "-c", configFile)
	cmd.Stdin = strings.NewReader(`{'b': 1, 'a': 2}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err = cmd.Run()
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"a\": 2,\n  \"b\": 1\n}\n", stdout.String())
}

// TestCLI_InvalidLiteral tests the CLI with an invalid literal input
func TestCLI_InvalidLiteral(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(`{'a': }`)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with an invalid literal")
	assert.Contains(t, stderr.String(), "Literal parsing error:")
	assert.Contains(t, stderr.String(), "offset 6")
}

// TestCLI_UnterminatedString tests the CLI with a lexing failure
func TestCLI_UnterminatedString(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(`['unclosed`)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err)
	assert.Contains(t, stderr.String(), "Literal scanning error:")
	assert.Contains(t, stderr.String(), "unterminated string literal")
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader("")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr.String(), "empty input")
}

// TestCLI_MissingInputFile tests the CLI with a nonexistent input file
func TestCLI_MissingInputFile(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-i", "/nonexistent/literal.py")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err)
	assert.Contains(t, stderr.String(), "not found")
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-v")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "pyjson version")
}

// TestCLI_Help tests the help output
func TestCLI_Help(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	helpOutput := string(output)
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "-i, --input")
	assert.Contains(t, helpOutput, "-o, --output")
	assert.Contains(t, helpOutput, "-n, --indent")
	assert.Contains(t, helpOutput, "-m, --minify")
	assert.Contains(t, helpOutput, "-r, --reformat")
	assert.Contains(t, helpOutput, "--sort-keys")
	assert.Contains(t, helpOutput, "--keys")
}
