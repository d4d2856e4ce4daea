package recommend

import "sort"

// SkillMatch - результат сопоставления навыков пользователя и проекта.
type SkillMatch struct {
	Score    float64
	Matching []string
	Missing  []string
}

// MatchSkills считает долю навыков проекта, которыми владеет пользователь.
// Проект без заявленных навыков не даёт сигнала: балл 0, оба списка пусты.
func MatchSkills(userSkills, projectSkills []string) SkillMatch {
	project := toSet(projectSkills)
	if len(project) == 0 {
		return SkillMatch{Matching: []string{}, Missing: []string{}}
	}
	user := toSet(userSkills)

	matching := make([]string, 0, len(project))
	missing := make([]string, 0, len(project))
	for name := range project {
		if _, ok := user[name]; ok {
			matching = append(matching, name)
		} else {
			missing = append(missing, name)
		}
	}
	sort.Strings(matching)
	sort.Strings(missing)

	return SkillMatch{
		Score:    float64(len(matching)) / float64(len(project)),
		Matching: matching,
		Missing:  missing,
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}
