package server

// MatchServerConfig holds the tolerance margins of the college match filters.
type MatchServerConfig struct {
	GPATolerance   float64 `mapstructure:"gpa_tolerance"   yaml:"gpa_tolerance"`
	ScoreTolerance float64 `mapstructure:"score_tolerance" yaml:"score_tolerance"`
}
