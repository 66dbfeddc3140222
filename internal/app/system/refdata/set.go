package refdata

import "github.com/dalemusser/workbookhub/internal/domain/models"

// Set is one load's worth of reference data. Collections that were not
// requested are nil.
type Set struct {
	PlatformID string

	Users              []models.User
	LearningPlatforms  []models.LearningPlatform
	LearningActivities []models.LearningActivity
	LearningTypes      []models.LearningType
	TaskStatuses       []models.TaskStatus
	Locations          []models.Location
	Areas              []models.Area
	Schools            []models.School
	GraduateAttributes []models.GraduateAttribute

	names map[Collection]map[string]string
}

func (s *Set) index() {
	s.names = map[Collection]map[string]string{
		Users:              make(map[string]string, len(s.Users)),
		LearningPlatforms:  make(map[string]string, len(s.LearningPlatforms)),
		LearningActivities: make(map[string]string, len(s.LearningActivities)),
		LearningTypes:      make(map[string]string, len(s.LearningTypes)),
		TaskStatuses:       make(map[string]string, len(s.TaskStatuses)),
		Locations:          make(map[string]string, len(s.Locations)),
		Areas:              make(map[string]string, len(s.Areas)),
		Schools:            make(map[string]string, len(s.Schools)),
		GraduateAttributes: make(map[string]string, len(s.GraduateAttributes)),
	}
	for _, v := range s.Users {
		s.names[Users][v.ID] = v.Name
	}
	for _, v := range s.LearningPlatforms {
		s.names[LearningPlatforms][v.ID] = v.Name
	}
	for _, v := range s.LearningActivities {
		s.names[LearningActivities][v.ID] = v.Name
	}
	for _, v := range s.LearningTypes {
		s.names[LearningTypes][v.ID] = v.Name
	}
	for _, v := range s.TaskStatuses {
		s.names[TaskStatuses][v.ID] = v.Name
	}
	for _, v := range s.Locations {
		s.names[Locations][v.ID] = v.Name
	}
	for _, v := range s.Areas {
		s.names[Areas][v.ID] = v.Name
	}
	for _, v := range s.Schools {
		s.names[Schools][v.ID] = v.Name
	}
	for _, v := range s.GraduateAttributes {
		s.names[GraduateAttributes][v.ID] = v.Name
	}
}

// Name resolves id within collection c, or returns "" when unknown.
func (s *Set) Name(c Collection, id string) string {
	if s == nil || s.names == nil {
		return ""
	}
	return s.names[c][id]
}

func (s *Set) UserName(id string) string             { return s.Name(Users, id) }
func (s *Set) PlatformName(id string) string         { return s.Name(LearningPlatforms, id) }
func (s *Set) LearningActivityName(id string) string { return s.Name(LearningActivities, id) }
func (s *Set) LearningTypeName(id string) string     { return s.Name(LearningTypes, id) }
func (s *Set) TaskStatusName(id string) string       { return s.Name(TaskStatuses, id) }
func (s *Set) LocationName(id string) string         { return s.Name(Locations, id) }
func (s *Set) AreaName(id string) string             { return s.Name(Areas, id) }
func (s *Set) SchoolName(id string) string           { return s.Name(Schools, id) }

// UserNames resolves a list of user ids, skipping unknown ones.
func (s *Set) UserNames(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n := s.UserName(id); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// SchoolsInArea filters Schools to one area; an empty area returns all.
func (s *Set) SchoolsInArea(areaID string) []models.School {
	if areaID == "" {
		return s.Schools
	}
	var out []models.School
	for _, sc := range s.Schools {
		if sc.AreaID == areaID {
			out = append(out, sc)
		}
	}
	return out
}
