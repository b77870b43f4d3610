package jswrite

import "github.com/plasmerge/plasmerge/merge"

// ComponentParser adapts jswrite into merge.Parser, additionally
// classifying the parsed markup into the astnode tree the merge engine
// operates over.
type ComponentParser struct{}

func (ComponentParser) Parse(source string) (merge.ParsedComponent, error) {
	f, err := ParseFile(source)
	if err != nil {
		return merge.ParsedComponent{}, err
	}
	return merge.ParsedComponent{
		ParsedFile: f.ToParsedFile(),
		Root:       ClassifyMarkup(f.Markup, f.Helper),
	}, nil
}

var _ merge.Parser = ComponentParser{}
