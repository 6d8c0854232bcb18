package bot

import (
	"strings"
	"unicode"
)

const quote = '"'

// tokenize splits line on white space. Double quotes group words into one
// token ("Anna Maria"); an unterminated quote runs to the end of the line.
func tokenize(line string) []string {
	var (
		tokens  []string
		cur     strings.Builder
		quoted  bool
		inToken bool
	)
	for _, r := range line {
		switch {
		case r == quote:
			quoted = !quoted
			inToken = true
		case quoted:
			cur.WriteRune(r)
		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// parseLine resolves the command word(s) of line. Two-word commands win over
// their one-word prefix. The command is lower-cased; arguments are kept as typed.
func parseLine(line string) (string, []string) {
	tokens := tokenize(line)
	if len(tokens) == 0 {
		return "", nil
	}
	if len(tokens) > 1 {
		pair := strings.ToLower(tokens[0] + " " + tokens[1])
		if _, ok := commands[pair]; ok {
			return pair, tokens[2:]
		}
	}
	return strings.ToLower(tokens[0]), tokens[1:]
}
