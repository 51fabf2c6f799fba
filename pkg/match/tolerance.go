package match

// Tolerances are the margins by which a student may sit below a college's
// averages and still be shown that college.
type Tolerances struct {
	GPA   float64 `json:"gpa"   yaml:"gpa"`
	Score float64 `json:"score" yaml:"score"`
}

const (
	DefaultGPATolerance   = 0.2
	DefaultScoreTolerance = 100
)

func DefaultTolerances() Tolerances {
	return Tolerances{
		GPA:   DefaultGPATolerance,
		Score: DefaultScoreTolerance,
	}
}
