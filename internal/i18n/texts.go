package i18n

type Stats struct {
	Lightning string `json:"lightning"`
	Smart     string `json:"smart"`
	Premium   string `json:"premium"`
}

type RepeatOptions struct {
	Today    string `json:"today"`
	Everyday string `json:"everyday"`
}

type Features struct {
	Instant     string `json:"instant"`
	InstantDesc string `json:"instantDesc"`
	Smart       string `json:"smart"`
	SmartDesc   string `json:"smartDesc"`
	Premium     string `json:"premium"`
	PremiumDesc string `json:"premiumDesc"`
}

// Texts is one language's full set of display strings.
type Texts struct {
	Lang Lang `json:"lang"`

	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Stats    Stats  `json:"stats"`

	FormTitle        string        `json:"formTitle"`
	FormSubtitle     string        `json:"formSubtitle"`
	TitleLabel       string        `json:"titleLabel"`
	TitlePlaceholder string        `json:"titlePlaceholder"`
	TimeLabel        string        `json:"timeLabel"`
	RepeatLabel      string        `json:"repeatLabel"`
	RepeatOptions    RepeatOptions `json:"repeatOptions"`
	SubmitButton     string        `json:"submitButton"`
	Creating         string        `json:"creating"`

	Features Features `json:"features"`

	RemindersTitle    string `json:"remindersTitle"`
	RemindersSubtitle string `json:"remindersSubtitle"`
	CleanupButton     string `json:"cleanupButton"`
	PastDue           string `json:"pastDue"`
	AllReminders      string `json:"allReminders"`
	NoReminders       string `json:"noReminders"`
	NoRemindersDesc   string `json:"noRemindersDesc"`
	PastDueLabel      string `json:"pastDueLabel"`

	Footer string `json:"footer"`

	Loading     string `json:"loading"`
	LoadingDesc string `json:"loadingDesc"`
}

var tables = map[Lang]Texts{
	English: {
		Lang:     English,
		Title:    "AI Reminders",
		Subtitle: "Experience the future of productivity with our intelligent reminder system. Powered by cutting-edge AI and beautiful design.",
		Stats: Stats{
			Lightning: "Lightning Fast",
			Smart:     "Smart AI",
			Premium:   "Premium UX",
		},
		FormTitle:        "Create New Reminder",
		FormSubtitle:     "Transform your productivity with intelligent reminders",
		TitleLabel:       "What do you want to be reminded about?",
		TitlePlaceholder: "e.g., Take medicine, Call mom, Exercise",
		TimeLabel:        "What time?",
		RepeatLabel:      "Repeat",
		RepeatOptions: RepeatOptions{
			Today:    "📅 Just today",
			Everyday: "🔄 Every day",
		},
		SubmitButton: "Create Reminder",
		Creating:     "Creating...",
		Features: Features{
			Instant:     "Instant Sync",
			InstantDesc: "Real-time updates across all devices",
			Smart:       "Smart AI",
			SmartDesc:   "Intelligent reminder management",
			Premium:     "Premium Design",
			PremiumDesc: "Beautiful, modern interface",
		},
		RemindersTitle:    "Your Reminders",
		RemindersSubtitle: "Manage your intelligent reminders with ease",
		CleanupButton:     "Cleanup",
		PastDue:           "Past Due",
		AllReminders:      "All Reminders",
		NoReminders:       "No reminders yet",
		NoRemindersDesc:   "Create your first reminder to experience the future of productivity",
		PastDueLabel:      "Past due",
		Footer:            "Built with Go",
		Loading:           "Loading Reminders",
		LoadingDesc:       "Preparing your intelligent reminder system...",
	},
	Hindi: {
		Lang:     Hindi,
		Title:    "AI रिमाइंडर्स",
		Subtitle: "हमारी बुद्धिमान रिमाइंडर प्रणाली के साथ उत्पादकता के भविष्य का अनुभव करें। कटिंग-एज AI और सुंदर डिज़ाइन द्वारा संचालित।",
		Stats: Stats{
			Lightning: "बिजली की तेजी",
			Smart:     "स्मार्ट AI",
			Premium:   "प्रीमियम UX",
		},
		FormTitle:        "नया रिमाइंडर बनाएं",
		FormSubtitle:     "बुद्धिमान रिमाइंडर्स के साथ अपनी उत्पादकता को बदलें",
		TitleLabel:       "आप किस बारे में याद दिलाना चाहते हैं?",
		TitlePlaceholder: "जैसे, दवा लें, माँ को फोन करें, व्यायाम करें",
		TimeLabel:        "किस समय?",
		RepeatLabel:      "दोहराएं",
		RepeatOptions: RepeatOptions{
			Today:    "📅 सिर्फ आज",
			Everyday: "🔄 हर दिन",
		},
		SubmitButton: "रिमाइंडर बनाएं",
		Creating:     "बना रहे हैं...",
		Features: Features{
			Instant:     "तुरंत सिंक",
			InstantDesc: "सभी उपकरणों पर रीयल-टाइम अपडेट",
			Smart:       "स्मार्ट AI",
			SmartDesc:   "बुद्धिमान रिमाइंडर प्रबंधन",
			Premium:     "प्रीमियम डिज़ाइन",
			PremiumDesc: "सुंदर, आधुनिक इंटरफेस",
		},
		RemindersTitle:    "आपके रिमाइंडर्स",
		RemindersSubtitle: "अपने बुद्धिमान रिमाइंडर्स को आसानी से प्रबंधित करें",
		CleanupButton:     "सफाई",
		PastDue:           "समय बीत गया",
		AllReminders:      "सभी रिमाइंडर्स",
		NoReminders:       "अभी तक कोई रिमाइंडर नहीं",
		NoRemindersDesc:   "उत्पादकता के भविष्य का अनुभव करने के लिए अपना पहला रिमाइंडर बनाएं",
		PastDueLabel:      "समय बीत गया",
		Footer:            "Go के साथ बनाया गया",
		Loading:           "रिमाइंडर्स लोड हो रहे हैं",
		LoadingDesc:       "आपकी बुद्धिमान रिमाइंडर प्रणाली तैयार हो रही है...",
	},
}

// RepeatLabelFor returns the display label for a repeat mode value.
func (t Texts) RepeatLabelFor(mode string) string {
	if mode == "everyday" {
		return t.RepeatOptions.Everyday
	}
	return t.RepeatOptions.Today
}
