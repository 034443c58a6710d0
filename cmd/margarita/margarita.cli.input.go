package main

import (
	"encoding/json"
	"io"
	"os"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// loadContext builds the render context from -c JSON, -f file, or an
// auto-discovered sibling .json file, in that priority order.
func loadContext(jsonStr, filePath, templatePath string) (map[string]any, error) {
	var jsonData []byte

	switch {
	case jsonStr != "":
		jsonData = []byte(jsonStr)
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		jsonData = data
	default:
		data, ok := discoverContextFile(templatePath)
		if !ok {
			return make(map[string]any), nil
		}
		jsonData = data
	}

	var result map[string]any
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// discoverContextFile looks for a context file next to the template,
// named <template>.json.
func discoverContextFile(templatePath string) ([]byte, bool) {
	if templatePath == "" || templatePath == InputSourceStdin {
		return nil, false
	}
	data, err := os.ReadFile(templatePath + ContextFileExt)
	if err != nil {
		return nil, false
	}
	return data, true
}
