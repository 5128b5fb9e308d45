package style

import (
	"regexp"
	"strings"
)

var anyTag = regexp.MustCompile(`\[/?[A-Za-z][A-Za-z0-9_.-]*\]`)

// span is an open tag waiting for its closing tag.
type span struct {
	tag  string
	text strings.Builder
}

// Markup expands [tag]...[/tag] markup into styled text. Tags may nest,
// including tags of the same name; a closing tag pairs with the nearest open
// tag of that name. Unknown and unbalanced tags are left as-is.
func (reg *Registry) Markup(text string) string {
	stack := []*span{{}}
	top := func() *span { return stack[len(stack)-1] }

	// unwind pops spans above depth and writes them back as literal text.
	unwind := func(depth int) {
		for len(stack) > depth+1 {
			s := top()
			stack = stack[:len(stack)-1]
			top().text.WriteString("[" + s.tag + "]" + s.text.String())
		}
	}

	last := 0
	for _, loc := range anyTag.FindAllStringIndex(text, -1) {
		top().text.WriteString(text[last:loc[0]])
		last = loc[1]

		token := text[loc[0]:loc[1]]
		name, closing := strings.CutPrefix(token[1:len(token)-1], "/")
		if _, ok := reg.tags[name]; !ok {
			top().text.WriteString(token)
			continue
		}
		if !closing {
			stack = append(stack, &span{tag: name})
			continue
		}

		depth := -1
		for i := len(stack) - 1; i > 0; i-- {
			if stack[i].tag == name {
				depth = i
				break
			}
		}
		if depth < 0 {
			top().text.WriteString(token)
			continue
		}
		unwind(depth)
		s := top()
		stack = stack[:len(stack)-1]
		top().text.WriteString(reg.Tag(name).Render(s.text.String()))
	}
	top().text.WriteString(text[last:])
	unwind(0)
	return stack[0].text.String()
}

// Strip removes known markup tags, leaving the enclosed text.
func (reg *Registry) Strip(text string) string {
	return anyTag.ReplaceAllStringFunc(text, func(tag string) string {
		name := strings.TrimPrefix(tag[1:len(tag)-1], "/")
		if _, ok := reg.tags[name]; ok {
			return ""
		}
		return tag
	})
}
