package render

var levelEmoji = [...]string{"0️⃣", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

// UnknownLevelEmoji is shown for raid levels without a keycap emoji.
const UnknownLevelEmoji = "❔"

// LevelEmoji returns the keycap emoji for raid levels 0 to 10.
func LevelEmoji(level int) string {
	if level < 0 || level >= len(levelEmoji) {
		return UnknownLevelEmoji
	}
	return levelEmoji[level]
}
