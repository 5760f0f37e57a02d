// Package sites classifies job posting URLs against a registry of known job
// boards and exposes per-board selector rules for the scrape chain.
package sites

import (
	"net/url"
	"strings"
)

// Profile identifies a known job board, or a generic/invalid URL.
type Profile string

const (
	// ProfileLinkedIn is linkedin.com
	ProfileLinkedIn Profile = "linkedin"
	// ProfileIndeed is indeed.com
	ProfileIndeed Profile = "indeed"
	// ProfileGlassdoor is glassdoor.com
	ProfileGlassdoor Profile = "glassdoor"
	// ProfileMonster is monster.com
	ProfileMonster Profile = "monster"
	// ProfileCareerBuilder is careerbuilder.com
	ProfileCareerBuilder Profile = "careerbuilder"
	// ProfileZipRecruiter is ziprecruiter.com
	ProfileZipRecruiter Profile = "ziprecruiter"
	// ProfileDice is dice.com
	ProfileDice Profile = "dice"
	// ProfileAngelList is angel.co / wellfound.com
	ProfileAngelList Profile = "angellist"
	// ProfileStackOverflow is stackoverflow.com jobs
	ProfileStackOverflow Profile = "stackoverflow"
	// ProfileRemoteCo is remote.co
	ProfileRemoteCo Profile = "remoteco"
	// ProfileWeWorkRemotely is weworkremotely.com
	ProfileWeWorkRemotely Profile = "weworkremotely"
	// ProfileFlexJobs is flexjobs.com
	ProfileFlexJobs Profile = "flexjobs"
	// ProfileGeneric is a well-formed URL on an unrecognized host
	ProfileGeneric Profile = "generic"
	// ProfileInvalid is a string that does not parse as an absolute URL.
	// This is a normal outcome, not an error: manual text input reaches the
	// classifier too.
	ProfileInvalid Profile = "invalid"
)

// hostRegistry maps host substrings to profiles. Checked in declaration
// order; the first match wins.
var hostRegistry = []struct {
	hostPart string
	profile  Profile
}{
	{"linkedin.com", ProfileLinkedIn},
	{"indeed.com", ProfileIndeed},
	{"glassdoor.com", ProfileGlassdoor},
	{"monster.com", ProfileMonster},
	{"careerbuilder.com", ProfileCareerBuilder},
	{"ziprecruiter.com", ProfileZipRecruiter},
	{"dice.com", ProfileDice},
	{"angel.co", ProfileAngelList},
	{"wellfound.com", ProfileAngelList},
	{"stackoverflow.com", ProfileStackOverflow},
	{"remote.co", ProfileRemoteCo},
	{"weworkremotely.com", ProfileWeWorkRemotely},
	{"flexjobs.com", ProfileFlexJobs},
}

// jobPathHints lists path fragments that mark a URL as a posting page rather
// than a search or company page. Advisory only; host match is sufficient for
// classification.
var jobPathHints = map[Profile][]string{
	ProfileLinkedIn:  {"/jobs/", "/job/"},
	ProfileIndeed:    {"/viewjob", "/job/"},
	ProfileGlassdoor: {"/job/", "/Job/"},
}

// Classify maps a URL string to a Profile. It is deterministic, total, and
// performs no network access. Malformed input yields ProfileInvalid.
func Classify(rawURL string) Profile {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ProfileInvalid
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ProfileInvalid
	}

	host := strings.ToLower(parsed.Host)
	for _, entry := range hostRegistry {
		if strings.Contains(host, entry.hostPart) {
			return entry.profile
		}
	}
	return ProfileGeneric
}

// IsJobPath reports whether the URL path looks like an individual posting
// for boards where that is distinguishable (LinkedIn, Indeed, Glassdoor).
// For all other profiles it returns true.
func IsJobPath(profile Profile, rawURL string) bool {
	hints, ok := jobPathHints[profile]
	if !ok {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := parsed.Path
	for _, hint := range hints {
		if strings.Contains(path, hint) || strings.Contains(strings.ToLower(path), strings.ToLower(hint)) {
			return true
		}
	}
	return false
}
