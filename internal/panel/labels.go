package panel

// Labels holds every display string of the panel in one language.
type Labels struct {
	TotalMessages       string
	AverageResponseTime string
	ResolvedChats       string
	ActiveAdmins        string
	Satisfaction        string

	MinutesUnit string

	PerformanceTitle string
	ResponseTime     string
	StatisticsTitle  string
	MessagesPerAdmin string
	ResolvedPerDay   string

	Tiers [tierCount]string
}

var languages = map[string]Labels{
	"ru": {
		TotalMessages:       "Всего сообщений",
		AverageResponseTime: "Среднее время ответа",
		ResolvedChats:       "Решено чатов",
		ActiveAdmins:        "Активных админов",
		Satisfaction:        "Удовлетворённость",
		MinutesUnit:         "мин",
		PerformanceTitle:    "Производительность",
		ResponseTime:        "Время ответа",
		StatisticsTitle:     "Статистика",
		MessagesPerAdmin:    "Сообщений на админа",
		ResolvedPerDay:      "Решено в день",
		Tiers: [tierCount]string{
			TierExcellent:        "Отлично",
			TierGood:             "Хорошо",
			TierAcceptable:       "Удовлетворительно",
			TierNeedsImprovement: "Требует улучшения",
		},
	},
	"en": {
		TotalMessages:       "Total messages",
		AverageResponseTime: "Avg response time",
		ResolvedChats:       "Resolved chats",
		ActiveAdmins:        "Active admins",
		Satisfaction:        "Satisfaction",
		MinutesUnit:         "min",
		PerformanceTitle:    "Performance",
		ResponseTime:        "Response time",
		StatisticsTitle:     "Statistics",
		MessagesPerAdmin:    "Messages per admin",
		ResolvedPerDay:      "Resolved per day",
		Tiers: [tierCount]string{
			TierExcellent:        "Excellent",
			TierGood:             "Good",
			TierAcceptable:       "Acceptable",
			TierNeedsImprovement: "Needs improvement",
		},
	},
}

// LabelsFor returns the label table for lang, or the default language's
// table when lang is unknown.
func LabelsFor(lang string) Labels {
	if l, ok := languages[lang]; ok {
		return l
	}
	return languages[DefaultLanguage]
}
