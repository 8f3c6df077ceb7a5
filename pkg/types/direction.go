package types

// StudyDirection is the optimization direction of a study.
type StudyDirection string

// Study directions.
const (
	StudyDirectionNotSet   StudyDirection = "NOT_SET"
	StudyDirectionMinimize StudyDirection = "MINIMIZE"
	StudyDirectionMaximize StudyDirection = "MAXIMIZE"
)

var validStudyDirections = map[StudyDirection]bool{
	StudyDirectionNotSet:   true,
	StudyDirectionMinimize: true,
	StudyDirectionMaximize: true,
}

// ParseStudyDirection returns the direction named s.
// Returns ErrInvalidDirection if s is not a recognized direction.
func ParseStudyDirection(s string) (StudyDirection, error) {
	d := StudyDirection(s)
	if !validStudyDirections[d] {
		return "", ErrInvalidDirection
	}
	return d, nil
}

func (d StudyDirection) String() string {
	return string(d)
}
