package categories

// Config is the shape of categories.yaml: the portal's display categories
// per kind.
//
//	news:
//	  - politics
//	  - sports
//	jobs:
//	  - government
//	  - private
type Config struct {
	News []string `yaml:"news"`
	Jobs []string `yaml:"jobs"`
}
