// config/config.go
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir         string `yaml:"data_dir"`
		ResumesDir      string `yaml:"resumes_dir"`
		LatexOutputDir  string `yaml:"latex_output_dir"`
		PDFOutputDir    string `yaml:"pdf_output_dir"`
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"app"`

	Personal Personal `yaml:"personal"`

	Gemini struct {
		Model          string `yaml:"model"`
		RepairModel    string `yaml:"repair_model"`
		KeyringAccount string `yaml:"keyring_account"`
	} `yaml:"gemini"`

	Scrape struct {
		BaseURL           string  `yaml:"base_url"`
		MaxJobs           int     `yaml:"max_jobs"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		PageDelayMillis   int     `yaml:"page_delay_millis"`
		Headless          bool    `yaml:"headless"`
	} `yaml:"scrape"`

	Apply struct {
		JobDelaySeconds int  `yaml:"job_delay_seconds"`
		MaxPlanSteps    int  `yaml:"max_plan_steps"`
		Headless        bool `yaml:"headless"`
	} `yaml:"apply"`
}

// Personal is the applicant profile fed into resume tailoring and
// application form filling.
type Personal struct {
	Name              string `yaml:"name"`
	Email             string `yaml:"email"`
	Phone             string `yaml:"phone"`
	LinkedIn          string `yaml:"linkedin"`
	GitHub            string `yaml:"github"`
	Location          string `yaml:"location"`
	WillingToRelocate bool   `yaml:"willing_to_relocate"`
	WorkAuthorization string `yaml:"work_authorization"`
	NeedsSponsorship  bool   `yaml:"needs_sponsorship"`
	VisaStatus        string `yaml:"visa_status"`
}

// PromptBlock renders the profile as a block for LLM prompts.
func (p Personal) PromptBlock() string {
	var b strings.Builder
	b.WriteString("PERSONAL INFORMATION:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Email: %s\n", p.Email)
	fmt.Fprintf(&b, "- Phone: %s\n", p.Phone)
	fmt.Fprintf(&b, "- LinkedIn: %s\n", p.LinkedIn)
	fmt.Fprintf(&b, "- GitHub: %s\n", p.GitHub)
	fmt.Fprintf(&b, "- Location: %s\n", p.Location)
	fmt.Fprintf(&b, "- Willing to relocate: %s\n", yesNo(p.WillingToRelocate))
	fmt.Fprintf(&b, "- Work authorization: %s\n", p.WorkAuthorization)
	fmt.Fprintf(&b, "- Requires sponsorship: %s\n", yesNo(p.NeedsSponsorship))
	if p.VisaStatus != "" {
		fmt.Fprintf(&b, "- Visa status: %s\n", p.VisaStatus)
	}
	return strings.TrimRight(b.String(), "\n")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
