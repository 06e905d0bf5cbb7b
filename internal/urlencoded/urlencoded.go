package urlencoded

import (
	"fmt"
	"strings"

	"github.com/indigo-web/utils/uf"

	"github.com/minum-web/minum/http/form"
	"github.com/minum-web/minum/http/status"
)

// nullLiteral is a special token some clients send to mean "no value".
const nullLiteral = "%NULL%"

// Parse decodes an application/x-www-form-urlencoded body of the shape
// k=v&k2=v2. Every token must contain an equals sign; keys must be non-blank
// and unique. A trailing '=' maps the key onto an empty string.
func Parse(data []byte) (*form.Body, error) {
	parts := make(map[string][]byte)

	for _, token := range strings.Split(uf.B2S(data), "&") {
		rawKey, rawValue, found := strings.Cut(token, "=")
		if !found {
			return nil, status.NewError(
				status.BadRequest,
				fmt.Sprintf("expected the pattern key=value but got %s", token),
			)
		}

		if len(rawKey) == 0 {
			return nil, status.NewError(status.BadRequest, "The key must not be blank")
		}

		if rawValue == nullLiteral {
			rawValue = ""
		}

		key, err := Decode(rawKey)
		if err != nil {
			return nil, err
		}

		value, err := Decode(rawValue)
		if err != nil {
			return nil, err
		}

		if previous, duplicate := parts[key]; duplicate {
			return nil, status.NewError(
				status.BadRequest,
				fmt.Sprintf(
					"%s was duplicated in the post body - had values of %s and %s",
					key, uf.B2S(previous), value,
				),
			)
		}

		parts[key] = []byte(value)
	}

	return form.New(parts, nil, data), nil
}

// Decode percent-decodes a single urlencoded token as UTF-8, treating '+'
// as a space.
func Decode(s string) (string, error) {
	if !strings.ContainsAny(s, "%+") {
		return s, nil
	}

	decoded := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		switch char := s[i]; char {
		case '%':
			if i+2 >= len(s) {
				return "", status.NewError(status.BadRequest, "invalid urlencoded sequence")
			}

			hi, lo := unhex(s[i+1]), unhex(s[i+2])
			if hi == 0xFF || lo == 0xFF {
				return "", status.NewError(status.BadRequest, "invalid urlencoded sequence")
			}

			decoded = append(decoded, hi<<4|lo)
			i += 2
		case '+':
			decoded = append(decoded, ' ')
		default:
			decoded = append(decoded, char)
		}
	}

	return uf.B2S(decoded), nil
}

func unhex(char byte) byte {
	switch {
	case char >= '0' && char <= '9':
		return char - '0'
	case char >= 'a' && char <= 'f':
		return char - 'a' + 10
	case char >= 'A' && char <= 'F':
		return char - 'A' + 10
	default:
		return 0xFF
	}
}
