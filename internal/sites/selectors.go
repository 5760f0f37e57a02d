// Package sites - selectors.go provides the per-board selector registry
// consumed by the scrape strategy chain.
package sites

// Rules holds ordered CSS selector lists for the three field groups a site
// strategy extracts. Selectors are tried in order; the first element with
// usable text wins.
type Rules struct {
	Title       []string
	Company     []string
	Description []string
}

// selectorRegistry maps each known board to its selector rules. Boards
// restructure their markup regularly, so every list ends with broader
// fallbacks.
var selectorRegistry = map[Profile]Rules{
	ProfileLinkedIn: {
		Title:       []string{".top-card-layout__title", "h1.topcard__title", "h1"},
		Company:     []string{".topcard__org-name-link", ".top-card-layout__card a[href*='/company/']", "a[href*='/company/']"},
		Description: []string{".description__text", ".show-more-less-html__markup", "section.description"},
	},
	ProfileIndeed: {
		Title:       []string{"h1.jobsearch-JobInfoHeader-title", "h1[class*='jobsearch']", "h1"},
		Company:     []string{"[data-testid='inlineHeader-companyName']", "[data-company-name]", ".jobsearch-CompanyInfoContainer a"},
		Description: []string{"#jobDescriptionText", ".jobsearch-JobComponent-description"},
	},
	ProfileGlassdoor: {
		Title:       []string{"[data-test='job-title']", "h1[class*='JobTitle']", "h1"},
		Company:     []string{"[data-test='employer-name']", "[class*='EmployerProfile']"},
		Description: []string{"[data-test='jobDescriptionContent']", ".jobDescriptionContent", "#JobDescriptionContainer"},
	},
	ProfileMonster: {
		Title:       []string{"h1[data-testid='jobTitle']", "h1.job-title", "h1"},
		Company:     []string{"[data-testid='company']", ".company-name"},
		Description: []string{"[data-testid='svx-description-container']", ".job-description"},
	},
	ProfileCareerBuilder: {
		Title:       []string{".jdp-title h1", "h2.h3", "h1"},
		Company:     []string{"[data-nexus-company]", ".data-details span"},
		Description: []string{".jdp-description-details", "#jdp_description"},
	},
	ProfileZipRecruiter: {
		Title:       []string{"h1.job_title", "h1[class*='job_title']", "h1"},
		Company:     []string{"a[class*='hiring_company']", ".hiring_company_text"},
		Description: []string{".job_description", "div[class*='jobDescriptionSection']"},
	},
	ProfileDice: {
		Title:       []string{"h1[data-cy='jobTitle']", "h1.jobTitle", "h1"},
		Company:     []string{"[data-cy='companyNameLink']", "a[href*='/company-profile/']"},
		Description: []string{"#jobDescription", "[data-testid='jobDescriptionHtml']"},
	},
	ProfileAngelList: {
		Title:       []string{"h1[class*='styles_title']", "h2[class*='title']", "h1"},
		Company:     []string{"a[href*='/company/']", "[class*='startup-link']"},
		Description: []string{"[class*='styles_description']", "#job-description"},
	},
	ProfileStackOverflow: {
		Title:       []string{"h1.fs-headline1", "h1[class*='job-details']", "h1"},
		Company:     []string{".fc-black-700 a", "[class*='employer']"},
		Description: []string{"#overview-items", ".js-job-detail"},
	},
	ProfileRemoteCo: {
		Title:       []string{"h1.font-weight-bold", "h1"},
		Company:     []string{".co_name", "[class*='company']"},
		Description: []string{".job_description", ".position"},
	},
	ProfileWeWorkRemotely: {
		Title:       []string{".listing-header-container h1", "h1"},
		Company:     []string{".listing-header-container .company", "[class*='company-card'] h2"},
		Description: []string{".listing-container", "#job-listing-show-container"},
	},
	ProfileFlexJobs: {
		Title:       []string{"h1[class*='title']", "h1"},
		Company:     []string{"[class*='company-name']", "[id*='company']"},
		Description: []string{"[class*='description']", "#job-description"},
	},
}

// Selectors returns the selector rules registered for a profile. Profiles
// without site-specific rules (generic, invalid, unregistered) get an empty
// Rules value; the scrape chain then relies on its generic strategy.
func Selectors(profile Profile) Rules {
	return selectorRegistry[profile]
}

// HasSelectors reports whether a profile has site-specific rules registered.
func HasSelectors(profile Profile) bool {
	_, ok := selectorRegistry[profile]
	return ok
}
