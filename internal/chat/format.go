package chat

import "unicode"

// FormatReply lays out a completion for plain-text display. The text is split
// before every line that starts a "Heading:" label; inside each section list
// lines get a bullet prefix, a sentence ending right before a bullet gets a
// line break, and headings get a blank line after them. Sections are joined
// with a blank line.
func FormatReply(text string) string {
	sections := splitBeforeHeadings([]rune(text))

	formatted := make([]rune, 0, len(text)+16)
	for index, section := range sections {
		if index > 0 {
			formatted = append(formatted, '\n', '\n')
		}
		section = insertWhere(section, startsListItem, []rune("• "))
		section = insertWhere(section, sentenceBeforeBullet, []rune("\n"))
		section = insertWhere(section, headingEndsLine, []rune("\n"))
		formatted = append(formatted, section...)
	}
	return string(formatted)
}

func splitBeforeHeadings(text []rune) [][]rune {
	sections := make([][]rune, 0, 1)
	start := 0
	for position := 1; position < len(text); position++ {
		if startsHeading(text, position) {
			sections = append(sections, text[start:position])
			start = position
		}
	}
	return append(sections, text[start:])
}

// startsHeading matches a newline, one capital letter, a run of lower-case
// letters or whitespace, then a colon.
func startsHeading(text []rune, position int) bool {
	if text[position] != '\n' || position+1 >= len(text) {
		return false
	}
	if text[position+1] < 'A' || text[position+1] > 'Z' {
		return false
	}
	cursor := position + 2
	for cursor < len(text) && ((text[cursor] >= 'a' && text[cursor] <= 'z') || unicode.IsSpace(text[cursor])) {
		cursor++
	}
	return cursor > position+2 && cursor < len(text) && text[cursor] == ':'
}

// insertWhere inserts addition at every position where match holds, with all
// positions judged against the original text.
func insertWhere(text []rune, match func(text []rune, position int) bool, addition []rune) []rune {
	result := make([]rune, 0, len(text))
	for position := 0; position <= len(text); position++ {
		if match(text, position) {
			result = append(result, addition...)
		}
		if position < len(text) {
			result = append(result, text[position])
		}
	}
	return result
}

func startsListItem(text []rune, position int) bool {
	if position == 0 || text[position-1] != '\n' {
		return false
	}
	cursor := skipSpace(text, position)
	if cursor < len(text) && isBulletRune(text[cursor]) {
		return true
	}

	digits := position
	for digits < len(text) && text[digits] >= '0' && text[digits] <= '9' {
		digits++
	}
	return digits > position && digits < len(text) && text[digits] == '.'
}

func sentenceBeforeBullet(text []rune, position int) bool {
	if position == 0 || text[position-1] != '.' {
		return false
	}
	cursor := skipSpace(text, position)
	return cursor < len(text) && text[cursor] == '•'
}

func headingEndsLine(text []rune, position int) bool {
	return position > 0 && position < len(text) && text[position-1] == ':' && text[position] == '\n'
}

func skipSpace(text []rune, position int) int {
	for position < len(text) && unicode.IsSpace(text[position]) {
		position++
	}
	return position
}

func isBulletRune(char rune) bool {
	return char == '-' || char == '•' || char == '*'
}
