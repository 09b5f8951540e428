package convert

import (
	"errors"
	"fmt"
	"path"
)

// Language names a Pulumi program language as accepted by `pulumi convert --language`.
type Language string

const (
	TypeScript Language = "typescript"
	Python     Language = "python"
	Go         Language = "go"
	CSharp     Language = "csharp"
	Java       Language = "java"
	YAML       Language = "yaml"
)

// entryPoints maps a target language to the program file `pulumi convert`
// generates for it, relative to the --out directory. Keep in sync with the
// pulumi language plugins.
var entryPoints = map[Language]string{ //nolint:gochecknoglobals
	TypeScript: "index.ts",
	Go:         "main.go",
	Python:     "__main__.py",
	Java:       path.Join("src", "main", "java", "generated_program", "App.java"),
	CSharp:     "Program.cs",
}

// EntryPoint returns the slash separated path of the generated program file
// for lang.
func EntryPoint(lang Language) (string, error) {
	file, ok := entryPoints[lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	return file, nil
}

func (l Language) String() string {
	return string(l)
}

// ErrUnsupportedLanguage is returned for languages without a known entry point.
var ErrUnsupportedLanguage = errors.New("unsupported language")
