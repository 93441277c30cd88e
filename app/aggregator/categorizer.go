package aggregator

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/devradar/devradar/app/database"
)

//go:embed categories.yml
var categoriesYAML []byte

const (
	defaultCategorySlug  = "general"
	minCategoryScore     = 2
	titleKeywordWeight   = 3
	summaryKeywordWeight = 1
)

type categoryRule struct {
	Slug     string   `yaml:"slug"`
	Keywords []string `yaml:"keywords"`
}

// Categorizer assigns a topic category via weighted keyword matching. The
// keyword table lives in an embedded YAML file so rules can change without
// touching the scoring code; the category rows themselves come from the
// store at construction time.
type Categorizer struct {
	rules      []categoryRule
	categories map[string]database.Category
}

func NewCategorizer(categoryRepo database.CategoryRepository) (*Categorizer, error) {
	rules, err := parseCategoryRules(categoriesYAML)
	if err != nil {
		return nil, err
	}

	rows, err := categoryRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	categories := make(map[string]database.Category, len(rows))
	for _, cat := range rows {
		categories[cat.Slug] = cat
	}

	for _, rule := range rules {
		if _, ok := categories[rule.Slug]; !ok {
			return nil, fmt.Errorf("category rule %q has no matching category row", rule.Slug)
		}
	}
	if _, ok := categories[defaultCategorySlug]; !ok {
		return nil, fmt.Errorf("default category %q not found in store", defaultCategorySlug)
	}

	return &Categorizer{rules: rules, categories: categories}, nil
}

func parseCategoryRules(data []byte) ([]categoryRule, error) {
	var rules []categoryRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse category rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("category rule table is empty")
	}
	return rules, nil
}

// Run picks the category with the highest keyword score; ties resolve to
// whichever rule appears first in the table. It returns the category and its
// display name, which becomes the item's sole tag.
func (c *Categorizer) Run(title, summary string) (database.Category, string) {
	slug := matchCategory(c.rules, title, summary)
	cat := c.categories[slug]
	return cat, cat.Name
}

func matchCategory(rules []categoryRule, title, summary string) string {
	lowerTitle := strings.ToLower(title)
	combined := lowerTitle + " " + strings.ToLower(summary)

	bestSlug := defaultCategorySlug
	bestScore := 0

	for _, rule := range rules {
		score := 0
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowerTitle, keyword) {
				score += titleKeywordWeight
			} else if strings.Contains(combined, keyword) {
				score += summaryKeywordWeight
			}
		}
		if score > bestScore {
			bestScore = score
			bestSlug = rule.Slug
		}
	}

	if bestScore < minCategoryScore {
		return defaultCategorySlug
	}

	return bestSlug
}
