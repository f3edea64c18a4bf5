package services

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

const DefaultLinkCacheTTL = time.Hour

// LinkReplacer rewrites outbound URLs using the active replacement rules.
// Rules are cached for ttl; a failed refresh keeps serving the old rules.
type LinkReplacer struct {
	repo interfaces.LinkReplacementRepository
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	rules    []models.LinkReplacement
	loadedAt time.Time
}

func NewLinkReplacer(repo interfaces.LinkReplacementRepository, ttl time.Duration) *LinkReplacer {
	if ttl <= 0 {
		ttl = DefaultLinkCacheTTL
	}
	return &LinkReplacer{repo: repo, ttl: ttl, now: time.Now}
}

func (lr *LinkReplacer) Rules(ctx context.Context) []models.LinkReplacement {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	now := lr.now()
	if len(lr.rules) > 0 && now.Sub(lr.loadedAt) < lr.ttl {
		return lr.rules
	}

	rules, err := lr.repo.List(ctx, true)
	if err != nil {
		logrus.WithError(err).Warn("failed to refresh link replacements, using cached rules")
		return lr.rules
	}
	lr.rules = rules
	lr.loadedAt = now
	return lr.rules
}

// Invalidate forces the next Rules call to reload.
func (lr *LinkReplacer) Invalidate() {
	lr.mu.Lock()
	lr.rules = nil
	lr.loadedAt = time.Time{}
	lr.mu.Unlock()
}

func (lr *LinkReplacer) ReplaceURL(ctx context.Context, u string) string {
	return ReplaceSingleURL(u, lr.Rules(ctx))
}

func (lr *LinkReplacer) ReplaceText(ctx context.Context, text string) string {
	return ReplaceLinksInText(text, lr.Rules(ctx))
}

// ReplaceLinksInText applies exact rules, then domain rules, then contains
// rules to every occurrence in text. Domain rules keep the matched URL's
// path, query and fragment.
func ReplaceLinksInText(text string, rules []models.LinkReplacement) string {
	if text == "" || len(rules) == 0 {
		return text
	}

	result := text
	for _, r := range rulesOfType(rules, models.MatchExact) {
		result = strings.ReplaceAll(result, r.OriginalURL, r.ReplacementURL)
	}
	for _, r := range rulesOfType(rules, models.MatchDomain) {
		re, err := regexp.Compile(`(?i)https?://` + regexp.QuoteMeta(r.OriginalURL) + `(?:/[^\s]*)?`)
		if err != nil {
			continue
		}
		replacement := r.ReplacementURL
		result = re.ReplaceAllStringFunc(result, func(match string) string {
			u, err := url.Parse(match)
			if err != nil {
				return match
			}
			return replacement + urlSuffix(u)
		})
	}
	for _, r := range rulesOfType(rules, models.MatchContains) {
		result = strings.ReplaceAll(result, r.OriginalURL, r.ReplacementURL)
	}
	return result
}

// ReplaceSingleURL returns the first matching rewrite of u, preferring exact
// matches, then a domain rule on u's host, then the first contains rule.
func ReplaceSingleURL(u string, rules []models.LinkReplacement) string {
	if u == "" || len(rules) == 0 {
		return u
	}

	for _, r := range rules {
		if r.MatchType == models.MatchExact && r.OriginalURL == u {
			return r.ReplacementURL
		}
	}

	if parsed, err := url.Parse(u); err == nil && parsed.Host != "" {
		for _, r := range rules {
			if r.MatchType == models.MatchDomain && parsed.Hostname() == r.OriginalURL {
				return r.ReplacementURL + urlSuffix(parsed)
			}
		}
	}

	for _, r := range rules {
		if r.MatchType == models.MatchContains && r.OriginalURL != "" && strings.Contains(u, r.OriginalURL) {
			return strings.Replace(u, r.OriginalURL, r.ReplacementURL, 1)
		}
	}

	return u
}

func rulesOfType(rules []models.LinkReplacement, t models.MatchType) []models.LinkReplacement {
	var out []models.LinkReplacement
	for _, r := range rules {
		if r.MatchType == t && r.OriginalURL != "" {
			out = append(out, r)
		}
	}
	return out
}

// urlSuffix renders path, query and fragment the way browsers report them,
// with an empty path shown as "/".
func urlSuffix(u *url.URL) string {
	var b strings.Builder
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	b.WriteString(path)
	if u.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(u.RawQuery)
	}
	if u.Fragment != "" {
		b.WriteString("#")
		b.WriteString(u.EscapedFragment())
	}
	return b.String()
}
