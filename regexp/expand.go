package regexp

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

// expand appends template to dst with $-references replaced by the groups
// recorded in match. It follows the stdlib template rules: $1 and ${1} are
// numbered groups, $name and ${name} are named groups, $$ is a literal $, and
// a name extends as far as letters, digits and underscores go.
func (r *Regexp) expand(dst, template, src []byte, match []int) []byte {
	for len(template) > 0 {
		before, after, found := bytes.Cut(template, []byte{'$'})
		if !found {
			break
		}

		dst = append(dst, before...)
		template = after

		if len(template) > 0 && template[0] == '$' {
			dst = append(dst, '$')
			template = template[1:]
			continue
		}

		name, num, rest, ok := extract(template)
		if !ok {
			// malformed reference, keep the $
			dst = append(dst, '$')
			continue
		}
		template = rest

		if num < 0 {
			num = r.SubexpIndex(name)
		}

		if num >= 0 && 2*num+1 < len(match) && match[2*num] >= 0 {
			dst = append(dst, src[match[2*num]:match[2*num+1]]...)
		}
	}

	return append(dst, template...)
}

// extract parses a reference name from the start of str. num is the group
// number, or -1 when the name is not a plain decimal.
func extract(str []byte) (name string, num int, rest []byte, ok bool) {
	if len(str) == 0 {
		return "", 0, nil, false
	}

	brace := false
	if str[0] == '{' {
		brace = true
		str = str[1:]
	}

	i := 0
	for i < len(str) {
		c, size := utf8.DecodeRune(str[i:])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		i += size
	}

	if i == 0 {
		return "", 0, nil, false
	}

	name = string(str[:i])
	if brace {
		if i >= len(str) || str[i] != '}' {
			return "", 0, nil, false
		}
		i++
	}

	num = 0
	for j := 0; j < len(name); j++ {
		c := name[j]
		if c < '0' || c > '9' || num >= 1e8 {
			num = -1
			break
		}
		num = num*10 + int(c-'0')
	}

	// leading zeros mean a name, not a number
	if name[0] == '0' && len(name) > 1 {
		num = -1
	}

	return name, num, str[i:], true
}
