// Package margarita implements a small markup language for composing
// structured prompt text for large language models.
//
// Templates are plain text with a handful of constructs:
//
//   - ${path} interpolates a context variable (dot and bracket paths).
//   - << ... >> is a literal block; only interpolation is live inside.
//   - "if path:" / "else:" select indentation-delimited branches by the
//     truthiness of a context value.
//   - [[ path ]] splices in another snippet, resolved through a snippet
//     store rooted at a base path.
//   - A leading "---" fence carries YAML front matter, surfaced as ordered
//     metadata and never rendered.
//
// Templates parse once into an immutable Template that can be rendered many
// times against different contexts:
//
//	engine := margarita.MustNew(
//		margarita.WithBasePath("./prompts"),
//	)
//	tmpl, err := engine.Parse("Hello, ${user.name}!")
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := tmpl.Render(ctx, map[string]any{
//		"user": map[string]any{"name": "Ada"},
//	})
//
// The Composer joins independently rendered snippets into a single prompt.
// All failures surface as classified errors; see IsContextError and friends.
package margarita

import "github.com/itsatony/go-margarita/internal"

// Version is the current library version
const Version = "0.2.1"

// stringifyValue renders a context value to its interpolated text form.
func stringifyValue(v any) string {
	return internal.ValueToString(v)
}

// Truthy reports how a value evaluates under conditional semantics: nil,
// false, empty strings, empty collections, and zero numbers are falsy.
func Truthy(v any) bool {
	return internal.IsTruthy(v)
}
