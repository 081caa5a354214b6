package storage

import "github.com/awladnasem/alefbata/internal/models"

// The fixed reference catalog both implementations seed from. Content is
// Arabic-facing: plan names, game copy and letter data are shown to users
// as-is.

// SeedPlans returns the subscription plans to seed.
func SeedPlans() []models.NewPlan {
	return []models.NewPlan{
		{
			Name:     "اشتراك شهري",
			Duration: 1,
			Price:    30,
			Features: []string{
				"وصول كامل لجميع الألعاب",
				"تتبع تقدم التعلم",
				"دعم فني أساسي",
			},
			Popular: false,
		},
		{
			Name:     "اشتراك 6 أشهر",
			Duration: 6,
			Price:    150,
			Features: []string{
				"وصول كامل لجميع الألعاب",
				"تتبع تقدم التعلم",
				"دعم فني متميز",
				"تقارير متقدمة للأداء",
			},
			Popular: true,
		},
		{
			Name:     "اشتراك سنوي",
			Duration: 12,
			Price:    300,
			Features: []string{
				"وصول كامل لجميع الألعاب",
				"تتبع تقدم التعلم",
				"دعم فني ممتاز على مدار الساعة",
				"تقارير متقدمة للأداء",
				"خصم 20% على المحتوى الإضافي",
			},
			Popular: false,
		},
	}
}

// SeedGames returns the game catalog to seed.
func SeedGames() []models.NewGame {
	return []models.NewGame{
		{
			Title:       "تعلم الحروف",
			Description: "ساعد طفلك على تعلم الحروف العربية بطريقة تفاعلية ممتعة مع أصوات نطق الحروف.",
			ImageURL:    "https://images.pexels.com/photos/3893739/pexels-photo-3893739.jpeg",
			AgeRange:    "3-6 سنوات",
			GameType:    "letters",
			Route:       "/games/letters",
			Featured:    true,
		},
		{
			Title:       "لعبة الكلمات",
			Description: "ساعد طفلك على تكوين الكلمات العربية وفهم معانيها من خلال ألعاب تفاعلية ممتعة.",
			ImageURL:    "https://images.pexels.com/photos/3662667/pexels-photo-3662667.jpeg",
			AgeRange:    "6-9 سنوات",
			GameType:    "words",
			Route:       "/games/words",
			Featured:    false,
		},
		{
			Title:       "قصص تفاعلية",
			Description: "اسمع وشاهد قصص عربية تفاعلية مع أنشطة تساعد على تنمية مهارات القراءة والفهم.",
			ImageURL:    "https://images.pexels.com/photos/4260325/pexels-photo-4260325.jpeg",
			AgeRange:    "5-12 سنة",
			GameType:    "stories",
			Route:       "/games/stories",
			Featured:    false,
		},
		{
			Title:       "تعلم الأرقام",
			Description: "لعبة للتعرف على الأرقام العربية وتعلم العد والعمليات الحسابية الأساسية.",
			ImageURL:    "https://images.pexels.com/photos/4144144/pexels-photo-4144144.jpeg",
			AgeRange:    "4-8 سنوات",
			GameType:    "numbers",
			Route:       "/games/numbers",
			Featured:    true,
		},
		{
			Title:       "تحدي الإملاء",
			Description: "لعبة تعليمية تساعد على تحسين مهارات الإملاء والكتابة باللغة العربية.",
			ImageURL:    "https://images.pexels.com/photos/3992943/pexels-photo-3992943.jpeg",
			AgeRange:    "7-12 سنة",
			GameType:    "spelling",
			Route:       "/games/spelling",
			Featured:    false,
		},
		{
			Title:       "ألغاز لغوية",
			Description: "مجموعة من الألغاز اللغوية التفاعلية التي تساعد على إثراء المفردات وتنمية التفكير.",
			ImageURL:    "https://images.pexels.com/photos/7676393/pexels-photo-7676393.jpeg",
			AgeRange:    "8-14 سنة",
			GameType:    "puzzles",
			Route:       "/games/puzzles",
			Featured:    false,
		},
	}
}

func soundURL(s string) *string { return &s }

// SeedLetters returns the Arabic letters to seed, examples included.
func SeedLetters() []models.NewLetter {
	return []models.NewLetter{
		{
			Letter: "ا", Name: "ألف", SoundURL: soundURL("/sounds/alif.mp3"),
			Isolated: "ا", Initial: "ا", Medial: "ـا", Final: "ـا",
			Examples: []models.LetterExample{
				{Word: "أَمير", Translation: "Prince"},
				{Word: "أَسَد", Translation: "Lion"},
				{Word: "أُم", Translation: "Mother"},
			},
		},
		{
			Letter: "ب", Name: "باء", SoundURL: soundURL("/sounds/ba.mp3"),
			Isolated: "ب", Initial: "بـ", Medial: "ـبـ", Final: "ـب",
			Examples: []models.LetterExample{
				{Word: "بَيت", Translation: "House"},
				{Word: "باب", Translation: "Door"},
				{Word: "كِتاب", Translation: "Book"},
			},
		},
		{
			Letter: "ت", Name: "تاء", SoundURL: soundURL("/sounds/ta.mp3"),
			Isolated: "ت", Initial: "تـ", Medial: "ـتـ", Final: "ـت",
			Examples: []models.LetterExample{
				{Word: "تُفاح", Translation: "Apple"},
				{Word: "تَمر", Translation: "Date (fruit)"},
				{Word: "بِنت", Translation: "Girl"},
			},
		},
		{
			Letter: "ث", Name: "ثاء", SoundURL: soundURL("/sounds/tha.mp3"),
			Isolated: "ث", Initial: "ثـ", Medial: "ـثـ", Final: "ـث",
			Examples: []models.LetterExample{
				{Word: "ثَلاثة", Translation: "Three"},
				{Word: "ثَعلب", Translation: "Fox"},
				{Word: "مُثَلَّث", Translation: "Triangle"},
			},
		},
		{
			Letter: "ج", Name: "جيم", SoundURL: soundURL("/sounds/jim.mp3"),
			Isolated: "ج", Initial: "جـ", Medial: "ـجـ", Final: "ـج",
			Examples: []models.LetterExample{
				{Word: "جَمَل", Translation: "Camel"},
				{Word: "جَبَل", Translation: "Mountain"},
				{Word: "دَجاج", Translation: "Chicken"},
			},
		},
		{
			Letter: "ح", Name: "حاء", SoundURL: soundURL("/sounds/ha.mp3"),
			Isolated: "ح", Initial: "حـ", Medial: "ـحـ", Final: "ـح",
			Examples: []models.LetterExample{
				{Word: "حُب", Translation: "Love"},
				{Word: "حَمامة", Translation: "Dove"},
				{Word: "مِفتاح", Translation: "Key"},
			},
		},
		{
			Letter: "خ", Name: "خاء", SoundURL: soundURL("/sounds/kha.mp3"),
			Isolated: "خ", Initial: "خـ", Medial: "ـخـ", Final: "ـخ",
			Examples: []models.LetterExample{
				{Word: "خُبز", Translation: "Bread"},
				{Word: "خَيمة", Translation: "Tent"},
				{Word: "مَطبَخ", Translation: "Kitchen"},
			},
		},
		{
			Letter: "د", Name: "دال", SoundURL: soundURL("/sounds/dal.mp3"),
			Isolated: "د", Initial: "د", Medial: "ـد", Final: "ـد",
			Examples: []models.LetterExample{
				{Word: "دَرس", Translation: "Lesson"},
				{Word: "دُب", Translation: "Bear"},
				{Word: "وَلَد", Translation: "Boy"},
			},
		},
	}
}
