package generator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// ErrUnknownLocale ...
var ErrUnknownLocale = errors.New("unknown locale")

// Locale is a source of first names with its draw weight.
type Locale struct {
	Code   string
	Weight float32
}

type nameSource func(f *gofakeit.Faker) string

func pool(names ...string) nameSource {
	return func(f *gofakeit.Faker) string {
		return names[f.Rand.Intn(len(names))]
	}
}

// nolint:gochecknoglobals
var locales = map[string]nameSource{
	"en": func(f *gofakeit.Faker) string {
		return f.FirstName()
	},
	"it_IT": pool(
		"Alessandro", "Giulia", "Lorenzo", "Francesca", "Matteo", "Chiara", "Giuseppe", "Alessia",
		"Gianluca", "Federica", "Pasquale", "Ludovica", "Raffaele", "Benedetta", "Vittorio", "Annunziata",
		"Maria Grazia", "Gian Marco", "Ottavio", "Piermaria",
	),
	"ja_JP": pool(
		"陽子", "翔太", "美加子", "直樹", "さゆり", "健一", "明美", "太郎", "花子", "裕美子",
		"淳", "春香", "修平", "あすか", "七夏", "結衣", "康弘", "零", "舞", "学",
	),
	"de": pool(
		"Jürgen", "Günther", "Käthe", "Wolfgang", "Friederike", "Hans-Dieter", "Ursula", "Dörte",
		"Sieglinde", "Bärbel", "Lothar", "Margarete", "Heinz-Günter", "Liselotte", "Reinhold", "Hildegard",
		"Karl Heinz", "Anneliese", "Jörg", "Ilse",
	),
	"ru_RU": pool(
		"Александр", "Анастасия", "Святослав", "Евдокия", "Ярослава", "Владимир", "Людмила", "Вячеслав",
		"Мстислав", "Ксения", "Аркадий", "Зинаида", "Всеволод", "Прасковья", "Ростислав", "Фёдор",
		"Богдан", "Ефросинья", "Кирилл", "Алёна",
	),
	"fr_FR": pool(
		"Émilie", "François", "Jean-Pierre", "Hélène", "Benoît", "Célestine", "Gérard", "Agnès",
		"Marie-Thérèse", "Léon", "Joséphine", "Aimé", "Maximilien", "Anaïs", "Clémence", "Théodore",
		"Jean Baptiste", "Noël", "Raphaël", "Zoé",
	),
	"ko_KR": pool(
		"민준", "서연", "지훈", "하은", "도윤", "수빈", "현우", "지민", "예은", "성민",
		"은지", "준호", "미경", "영수", "정호", "혜진", "상철", "순자", "동현", "유진",
	),
	"sv_SE": pool(
		"Björn", "Åsa", "Märta", "Göran", "Ingegerd", "Sören", "Linnéa", "Östen",
		"Gunilla", "Ragnvald", "Birgitta", "Torbjörn", "Solveig", "Ulf", "Kerstin", "Håkan",
		"Ann-Christin", "Sigvard", "Agneta", "Anna Karin",
	),
	"es": pool(
		"José", "María", "Jesús", "Lucía", "Joaquín", "Begoña", "Ángel", "Inés",
		"Máximo", "Concepción", "Rubén", "Ramón", "Encarnación", "Íñigo", "Nieves", "Sebastián",
		"María José", "Bautista", "Fernanda", "Agustín",
	),
	"da_DK": pool(
		"Søren", "Mette", "Jørgen", "Bodil", "Ægidius", "Kirsten", "Bjørn", "Dorthe",
		"Preben", "Birthe", "Henning", "Lisbeth", "Torben", "Åge", "Jens Peter", "Mads",
		"Signe", "Rasmus", "Vibeke", "Frederikke",
	),
	"no_NO": pool(
		"Øyvind", "Ingrid", "Håvard", "Solveig", "Bjørnar", "Åse", "Tormod", "Gudrun",
		"Sigurd", "Ragnhild", "Eirik", "Tordis", "Ørjan", "Kjellaug", "Stein Erik", "Liv",
		"Trygve", "Marit", "Halvor", "Sølvi",
	),
	"fi_FI": pool(
		"Väinö", "Aino", "Jaakko", "Päivi", "Tuomas", "Hannele", "Eino", "Sirkka-Liisa",
		"Onni", "Kyllikki", "Jyrki", "Mervi", "Yrjö", "Tyyne", "Pekka", "Riitta",
		"Aapo", "Ilmatar", "Kalevi", "Anna Maija",
	),
}

// nolint:gochecknoglobals
var defaultLocaleCodes = []string{
	"it_IT", "en", "ja_JP", "de", "ru_RU", "fr_FR", "ko_KR", "sv_SE", "es", "da_DK", "no_NO", "fi_FI",
}

// DefaultLocales returns equally weighted locales PoeIt users are generated with.
func DefaultLocales() []Locale {
	out := make([]Locale, len(defaultLocaleCodes))
	for i, v := range defaultLocaleCodes {
		out[i] = Locale{Code: v, Weight: 1}
	}

	return out
}

// LocaleCodes returns codes of all supported locales.
func LocaleCodes() []string {
	return append([]string(nil), defaultLocaleCodes...)
}

// ParseLocales parses locales in "code" or "code:weight" form.
func ParseLocales(s []string) ([]Locale, error) {
	out := make([]Locale, 0, len(s))

	for _, v := range s {
		code, weight := v, float32(1)

		if i := strings.LastIndexByte(v, ':'); i >= 0 {
			w, err := strconv.ParseFloat(v[i+1:], 32)
			if err != nil {
				return nil, fmt.Errorf("failed to parse weight of %s: %w", v, err)
			}
			code, weight = v[:i], float32(w)

			if !finite(weight) || weight < 0 {
				return nil, fmt.Errorf("%w: weight of %s should be a finite non-negative number", ErrInvalidConfig, v)
			}
		}

		if _, ok := locales[code]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, code)
		}

		out = append(out, Locale{Code: code, Weight: weight})
	}

	return out, nil
}
