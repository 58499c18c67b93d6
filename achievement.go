package main

// AchievementDef describes one unlockable achievement
type AchievementDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"desc"`
}

var Achievements = []AchievementDef{
	{"first_rock", "First Rock", "Destroy your first obstacle"},
	{"demolisher", "Demolisher", "Destroy 100 obstacles in a single run"},
	{"quarry", "Quarry", "Destroy 5000 obstacles in total"},
	{"climber", "Climber", "Reach level 5"},
	{"summit", "Summit", "Reach level 10"},
	{"high_roller", "High Roller", "Score 10000 in a single run"},
	{"marathon", "Marathon", "Survive 10 minutes in a single run"},
	{"regular", "Regular", "Finish 50 runs"},
	{"survivor", "Survivor", "Play for 1 hour total"},
}

// CheckAchievements unlocks what the finished run and the player's updated
// totals earn. Returns only the newly unlocked achievements.
func CheckAchievements(db *DB, playerID int64, run RunRow) []AchievementDef {
	if db == nil || playerID <= 0 {
		return nil
	}

	stats, err := db.GetStats(playerID)
	if err != nil || stats == nil {
		return nil
	}

	existing, err := db.GetAchievements(playerID)
	if err != nil {
		return nil
	}
	has := make(map[string]bool, len(existing))
	for _, a := range existing {
		has[a] = true
	}

	earned := func(id string) bool {
		switch id {
		case "first_rock":
			return stats.Kills >= 1
		case "demolisher":
			return run.Kills >= 100
		case "quarry":
			return stats.Kills >= 5000
		case "climber":
			return run.Level >= 5
		case "summit":
			return run.Level >= 10
		case "high_roller":
			return run.Score >= 10000
		case "marathon":
			return run.Duration >= 600
		case "regular":
			return stats.Runs >= 50
		case "survivor":
			return stats.Playtime >= 3600
		}
		return false
	}

	var unlocked []AchievementDef
	for _, def := range Achievements {
		if has[def.ID] || !earned(def.ID) {
			continue
		}
		if ok, err := db.UnlockAchievement(playerID, def.ID); err == nil && ok {
			unlocked = append(unlocked, def)
		}
	}
	return unlocked
}
