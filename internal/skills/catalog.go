// Package skills хранит канонический словарь технологий и нормализацию
// свободного ввода. Словарь статичный: алиасы соответствуют тому, как
// пользователи реально пишут названия технологий.
package skills

import (
	"sort"
	"strings"
)

type canonicalSkill struct {
	Name    string
	Aliases []string
}

var catalog = []canonicalSkill{
	{"Python", []string{"python", "py"}},
	{"JavaScript", []string{"javascript", "js"}},
	{"TypeScript", []string{"typescript", "ts"}},
	{"Java", []string{"java"}},
	{"C#", []string{"c#", "csharp"}},
	{"React", []string{"react", "reactjs"}},
	{"Angular", []string{"angular"}},
	{"Vue.js", []string{"vue", "vuejs"}},
	{"Node.js", []string{"node.js", "nodejs", "node"}},
	{"Django", []string{"django"}},
	{"Flask", []string{"flask"}},
	{"SQL", []string{"sql"}},
	{"PostgreSQL", []string{"postgresql", "postgres"}},
	{"MongoDB", []string{"mongodb", "mongo"}},
	{"Docker", []string{"docker"}},
	{"Kubernetes", []string{"kubernetes", "k8s"}},
	{"AWS", []string{"aws", "amazon web services"}},
	{"Git", []string{"git"}},
	{"C++", []string{"c++", "cpp"}},
	{"PHP", []string{"php"}},
	{"Swift", []string{"swift"}},
	{"Kotlin", []string{"kotlin"}},
	{"Go", []string{"go", "golang"}},
}

// aliasIndex строится один раз: alias (в нижнем регистре) -> каноническое имя.
var aliasIndex = func() map[string]string {
	idx := make(map[string]string, len(catalog)*2)
	for _, sk := range catalog {
		idx[strings.ToLower(sk.Name)] = sk.Name
		for _, a := range sk.Aliases {
			idx[a] = sk.Name
		}
	}
	return idx
}()

// Canonical возвращает список канонических названий в порядке словаря.
func Canonical() []string {
	names := make([]string, len(catalog))
	for i, sk := range catalog {
		names[i] = sk.Name
	}
	return names
}

// Normalize разбивает ввод по запятым и сопоставляет каждый токен со
// словарём без учёта регистра. Возвращает отсортированный набор
// канонических навыков и список нераспознанных токенов.
func Normalize(input string) (normalized []string, invalid []string) {
	seen := make(map[string]struct{})
	for _, raw := range strings.Split(input, ",") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			continue
		}
		name, ok := aliasIndex[token]
		if !ok {
			invalid = append(invalid, token)
			continue
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			normalized = append(normalized, name)
		}
	}
	sort.Strings(normalized)
	return normalized, invalid
}

// Lookup возвращает каноническое имя для одиночного токена.
func Lookup(token string) (string, bool) {
	name, ok := aliasIndex[strings.ToLower(strings.TrimSpace(token))]
	return name, ok
}
