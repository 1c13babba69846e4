// Copyright 2026 The OpenTrusty Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package organization

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
)

const (
	codePrefixLen  = 3
	fallbackPrefix = "ORG"
)

// CodePrefix returns the upper-cased first three letters or digits of name.
func CodePrefix(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if b.Len() >= codePrefixLen {
			break
		}
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		return fallbackPrefix
	}
	return b.String()
}

// GenerateCode derives a candidate organization code: the name prefix followed by
// a random number in [10, 99]. Callers check uniqueness.
func GenerateCode(name string) string {
	return fmt.Sprintf("%s%d", CodePrefix(name), 10+rand.IntN(90))
}
