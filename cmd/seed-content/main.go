package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lokalingo/toeflplay-backend/internal/config"
	"github.com/lokalingo/toeflplay-backend/internal/database"
	"github.com/lokalingo/toeflplay-backend/internal/logger"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
)

// Seeds the default content set: the four speaking templates, the two
// writing templates, the starter item banks for every mode, and the
// badge catalog. Safe to re-run; duplicate templates and badges are
// skipped, item banks are only filled when empty.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	contentRepo := repository.NewContentRepository(pool)
	badgeRepo := repository.NewBadgeRepository(pool)

	fmt.Println("=== Seeding TOEFLPlay Content ===")

	speakingIDs := seedSpeakingTemplates(ctx, contentRepo)
	writingIDs := seedWritingTemplates(ctx, contentRepo)
	seedListeningItems(ctx, contentRepo)
	seedSpeakingItems(ctx, contentRepo, speakingIDs)
	seedReadingItems(ctx, contentRepo)
	seedWritingItems(ctx, contentRepo, writingIDs)
	seedBadges(ctx, badgeRepo)

	fmt.Println("\nSeed completed!")
}

func seedSpeakingTemplates(ctx context.Context, repo *repository.ContentRepository) map[int]uuid.UUID {
	templates := []model.Template{
		{
			TemplateType:   model.TemplateSpeaking,
			TemplateNumber: 1,
			TemplateName:   "Memory/Experience",
			ColorCode:      "blue",
			TemplateText:   "I remember when I was in high school. It was my favorite time. I studied with my friends. We learned many subjects together. It was really fun. I enjoyed that experience very much.",
			TemplateTextID: "Template untuk pertanyaan tentang masa lalu atau pengalaman",
			Keywords:       []string{"remember", "experienced", "was", "past"},
			ExampleQuestions: []string{
				"Tell me about a memorable experience",
				"What did you do last summer?",
			},
		},
		{
			TemplateType:   model.TemplateSpeaking,
			TemplateNumber: 2,
			TemplateName:   "Preference/Feeling",
			ColorCode:      "green",
			TemplateText:   "I prefer studying at the library. It is quiet there. I can focus on my work. The library has many books. I like the environment. It helps me study better.",
			TemplateTextID: "Template untuk pertanyaan tentang kesukaan atau preferensi",
			Keywords:       []string{"prefer", "favorite", "like", "enjoy"},
			ExampleQuestions: []string{
				"What is your favorite place to study?",
				"Do you prefer online or offline classes?",
			},
		},
		{
			TemplateType:   model.TemplateSpeaking,
			TemplateNumber: 3,
			TemplateName:   "Opinion/Agreement",
			ColorCode:      "yellow",
			TemplateText:   "I agree with this idea. It is important for students. This helps them learn better. Many people support this. I think it is a good solution. We should do this.",
			TemplateTextID: "Template untuk pertanyaan tentang pendapat atau persetujuan",
			Keywords:       []string{"agree", "disagree", "think", "opinion"},
			ExampleQuestions: []string{
				"Do you agree that homework is important?",
				"What is your opinion about uniforms?",
			},
		},
		{
			TemplateType:   model.TemplateSpeaking,
			TemplateNumber: 4,
			TemplateName:   "Problem & Solution",
			ColorCode:      "red",
			TemplateText:   "I think we should reduce homework. Students have too much work. This causes stress. If we reduce homework, students can rest more. This is a better solution. Schools should do this.",
			TemplateTextID: "Template untuk pertanyaan tentang masalah dan solusi",
			Keywords:       []string{"should", "problem", "solution", "fix"},
			ExampleQuestions: []string{
				"What should schools do to reduce stress?",
				"How can we solve this problem?",
			},
		},
	}

	return createTemplates(ctx, repo, templates)
}

func seedWritingTemplates(ctx context.Context, repo *repository.ContentRepository) map[int]uuid.UUID {
	templates := []model.Template{
		{
			TemplateType:   model.TemplateWriting,
			TemplateNumber: 1,
			TemplateName:   "Email Request",
			ColorCode:      "purple",
			TemplateText: "Dear Professor [NAME],\n\n" +
				"I am writing to request [TOPIC]. I understand that the original deadline is [DAY], but I would like to ask for [REQUEST].\n\n" +
				"The reason for my request is that [REASON]. I have been working on this assignment and I believe that [BENEFIT].\n\n" +
				"I would be very grateful if you could consider my request. Please let me know if you need any additional information.\n\n" +
				"Thank you very much for your time and understanding.",
			TemplateTextID: "Template untuk email permintaan kepada dosen",
			Keywords:       []string{"request", "deadline", "reason", "grateful"},
			ExampleQuestions: []string{
				"Write an email requesting a deadline extension",
			},
		},
		{
			TemplateType:   model.TemplateWriting,
			TemplateNumber: 2,
			TemplateName:   "Discussion Opinion",
			ColorCode:      "orange",
			TemplateText: "I believe that [TOPIC] is very important because [REASON_1].\n\n" +
				"First, [POINT_1]. For example, [EXAMPLE_1]. This shows that [CONCLUSION_1].\n\n" +
				"Second, [POINT_2]. Many people think that [OPINION], but I disagree because [REASON_2].\n\n" +
				"In conclusion, I strongly believe that [FINAL_STATEMENT]. This is why [TOPIC] matters to everyone.",
			TemplateTextID: "Template untuk jawaban diskusi setuju/tidak setuju",
			Keywords:       []string{"believe", "first", "second", "conclusion"},
			ExampleQuestions: []string{
				"Do you agree or disagree with the statement?",
			},
		},
	}

	return createTemplates(ctx, repo, templates)
}

func createTemplates(ctx context.Context, repo *repository.ContentRepository, templates []model.Template) map[int]uuid.UUID {
	ids := make(map[int]uuid.UUID, len(templates))

	existing, err := repo.ListTemplates(ctx, nil)
	if err != nil {
		fmt.Printf("Error listing templates: %v\n", err)
		return ids
	}

	for i := range templates {
		t := &templates[i]

		var found *model.Template
		for j := range existing {
			if existing[j].TemplateType == t.TemplateType && existing[j].TemplateNumber == t.TemplateNumber {
				found = &existing[j]
				break
			}
		}
		if found != nil {
			ids[t.TemplateNumber] = found.ID
			fmt.Printf("Template %s #%d already exists, skipping\n", t.TemplateType, t.TemplateNumber)
			continue
		}

		if err := repo.CreateTemplate(ctx, t); err != nil {
			fmt.Printf("Error creating template %s #%d: %v\n", t.TemplateType, t.TemplateNumber, err)
			continue
		}
		ids[t.TemplateNumber] = t.ID
		fmt.Printf("Created template %s #%d (%s)\n", t.TemplateType, t.TemplateNumber, t.TemplateName)
	}

	return ids
}

func seedListeningItems(ctx context.Context, repo *repository.ContentRepository) {
	payloads := []model.ListeningItemPayload{
		{
			Text:            "The library is open.",
			ExpectedWords:   []string{"the", "library", "is", "open"},
			DurationSeconds: 3,
			Difficulty:      "easy",
		},
		{
			Text:            "I really enjoy studying English.",
			ExpectedWords:   []string{"i", "really", "enjoy", "studying", "english"},
			DurationSeconds: 4,
			Difficulty:      "easy",
		},
		{
			Text:            "My favorite place is the local library because it is quiet.",
			ExpectedWords:   []string{"favorite", "place", "local", "library", "quiet"},
			DurationSeconds: 6,
			Difficulty:      "medium",
		},
		{
			Text:            "Students should take notes during lectures because it helps them remember important information.",
			ExpectedWords:   []string{"students", "should", "take", "notes", "lectures", "helps", "remember", "important"},
			DurationSeconds: 8,
			Difficulty:      "medium",
		},
		{
			Text:            "Before leaving the gallery, please make sure to return your audio guide at the entrance.",
			ExpectedWords:   []string{"before", "leaving", "gallery", "make", "sure", "return", "audio", "guide", "entrance"},
			DurationSeconds: 10,
			Difficulty:      "hard",
		},
	}

	items := make([]model.GameItem, 0, len(payloads))
	for i, p := range payloads {
		items = append(items, model.GameItem{
			Mode:     model.ModeListening,
			Round:    model.RoundPractice,
			Position: i,
			Payload:  mustJSON(p),
		})
	}
	createItems(ctx, repo, model.ModeListening, items)
}

func seedSpeakingItems(ctx context.Context, repo *repository.ContentRepository, templateIDs map[int]uuid.UUID) {
	type prompt struct {
		question       string
		templateNumber int
		keywords       []string
	}
	prompts := []prompt{
		{
			question:       "Tell me about your favorite memory from school.",
			templateNumber: 1,
			keywords:       []string{"remember", "school", "favorite", "was"},
		},
		{
			question:       "What is your favorite place to relax?",
			templateNumber: 2,
			keywords:       []string{"prefer", "favorite", "like", "place"},
		},
		{
			question:       "Do you agree that students should wear uniforms to school?",
			templateNumber: 3,
			keywords:       []string{"agree", "think", "students", "should"},
		},
		{
			question:       "What should schools do to help students learn better?",
			templateNumber: 4,
			keywords:       []string{"should", "schools", "students", "better"},
		},
	}

	items := make([]model.GameItem, 0, len(prompts))
	for i, p := range prompts {
		tplID, ok := templateIDs[p.templateNumber]
		if !ok {
			fmt.Printf("No template #%d for speaking prompt %d, skipping\n", p.templateNumber, i+1)
			continue
		}
		items = append(items, model.GameItem{
			Mode:     model.ModeSpeaking,
			Round:    model.RoundPractice,
			Position: i,
			Payload: mustJSON(model.SpeakingPromptPayload{
				QuestionText:     p.question,
				TemplateID:       tplID,
				TimeLimitSeconds: 45,
				KeywordsToDetect: p.keywords,
			}),
		})
	}
	createItems(ctx, repo, model.ModeSpeaking, items)
}

func seedReadingItems(ctx context.Context, repo *repository.ContentRepository) {
	practice := []model.ReadingQuestionPayload{
		{
			QuestionText: "What is the main advantage of studying in a library?",
			Passage:      "The university library provides a quiet environment for students to focus on their studies. Many students prefer the library because it has fewer distractions than their dormitory rooms. The library also offers free Wi-Fi and comfortable seating areas.",
			Keywords:     []string{"library", "advantage", "benefit"},
			Options: []model.ReadingOption{
				{ID: "a", Text: "It provides a quiet environment", IsCorrect: true},
				{ID: "b", Text: "It has the most books on campus"},
				{ID: "c", Text: "It is open 24 hours every day"},
				{ID: "d", Text: "It requires a membership fee"},
			},
		},
		{
			QuestionText: "According to the passage, why do students take notes?",
			Passage:      "Taking notes during lectures is an essential study skill. Students should write down key points because it helps them remember important information. Research shows that handwriting notes improves memory retention more than typing on a laptop.",
			Keywords:     []string{"notes", "why", "reason"},
			Options: []model.ReadingOption{
				{ID: "a", Text: "To share with classmates after class"},
				{ID: "b", Text: "To help them remember important information", IsCorrect: true},
				{ID: "c", Text: "Because professors require it"},
				{ID: "d", Text: "To practice their handwriting skills"},
			},
		},
		{
			QuestionText: "What does the passage suggest about online courses?",
			Passage:      "Online courses have become increasingly popular among working professionals. These courses allow students to study at their own pace and access materials anytime. However, online learning requires strong self-discipline and time management skills to succeed.",
			Keywords:     []string{"online courses", "suggest", "require"},
			Options: []model.ReadingOption{
				{ID: "a", Text: "They are easier than traditional classes"},
				{ID: "b", Text: "They require self-discipline and time management", IsCorrect: true},
				{ID: "c", Text: "They are only for working professionals"},
				{ID: "d", Text: "They do not provide certificates"},
			},
		},
		{
			QuestionText: "What is mentioned about group study sessions?",
			Passage:      "Group study sessions can be very effective for learning difficult subjects. When students work together, they can explain concepts to each other and share different perspectives. However, group study only works well when all members are focused and prepared.",
			Keywords:     []string{"group study", "mentioned", "effective"},
			Options: []model.ReadingOption{
				{ID: "a", Text: "They are always better than studying alone"},
				{ID: "b", Text: "They help students explain concepts to each other", IsCorrect: true},
				{ID: "c", Text: "They are required for all university courses"},
				{ID: "d", Text: "They should last at least 3 hours"},
			},
		},
		{
			QuestionText: "According to the text, what should students do before exams?",
			Passage:      "Preparing for exams requires a systematic approach. Students should review their notes regularly throughout the semester rather than cramming the night before. Creating a study schedule and practicing with past exam questions can significantly improve performance.",
			Keywords:     []string{"before exams", "should", "prepare"},
			Options: []model.ReadingOption{
				{ID: "a", Text: "Study intensively the night before"},
				{ID: "b", Text: "Ask professors for the exam answers"},
				{ID: "c", Text: "Review notes regularly throughout the semester", IsCorrect: true},
				{ID: "d", Text: "Only memorize the textbook definitions"},
			},
		},
	}

	challenge := []model.ReadingQuestionPayload{
		{
			QuestionText: "What is the primary purpose of the campus writing center?",
			Passage:      "The campus writing center offers free tutoring services to help students improve their academic writing skills. Trained tutors provide one-on-one consultations where they review drafts, suggest improvements, and teach strategies for organizing essays. The center does not write papers for students but helps them become better writers through guidance and feedback.",
			Keywords:     []string{"writing center", "purpose", "primary"},
			Options: []model.ReadingOption{
				{ID: "a", Text: "To write papers for students who need help"},
				{ID: "b", Text: "To help students improve their writing skills", IsCorrect: true},
				{ID: "c", Text: "To grade all student assignments"},
				{ID: "d", Text: "To sell writing textbooks and materials"},
			},
		},
		{
			QuestionText: "What challenge does the passage identify with digital textbooks?",
			Passage:      "Digital textbooks are becoming more common in universities because they are often cheaper than printed versions and easier to carry. Students can search for specific terms instantly and highlight text digitally. Despite these advantages, some students complain that reading on screens for long periods causes eye strain and reduces their ability to concentrate.",
			Keywords:     []string{"digital textbooks", "challenge", "problem"},
			Options: []model.ReadingOption{
				{ID: "a", Text: "They are more expensive than printed books"},
				{ID: "b", Text: "They are too heavy to carry around"},
				{ID: "c", Text: "They cause eye strain and concentration problems", IsCorrect: true},
				{ID: "d", Text: "They cannot be highlighted or searched"},
			},
		},
		{
			QuestionText: "According to the passage, what distinguishes successful language learners?",
			Passage:      "Research on language acquisition shows that successful language learners share several common characteristics. They practice consistently every day, even if only for 15-20 minutes. They are not afraid to make mistakes and actively seek opportunities to use the language. Most importantly, they maintain a positive attitude and believe in their ability to improve over time.",
			Keywords:     []string{"successful language learners", "distinguishes", "characteristics"},
			Options: []model.ReadingOption{
				{ID: "a", Text: "They study grammar rules for many hours daily"},
				{ID: "b", Text: "They have natural talent for languages"},
				{ID: "c", Text: "They practice consistently and maintain a positive attitude", IsCorrect: true},
				{ID: "d", Text: "They avoid making any mistakes when speaking"},
			},
		},
		{
			QuestionText: "What does the author imply about time management?",
			Passage:      "Effective time management is crucial for academic success. Students who plan their weekly schedules tend to complete assignments on time and experience less stress. Using tools like calendars and to-do lists helps prioritize tasks. However, time management is a skill that must be developed through practice; it does not come naturally to most people.",
			Keywords:     []string{"time management", "imply", "skill"},
			Options: []model.ReadingOption{
				{ID: "a", Text: "It is a natural ability everyone is born with"},
				{ID: "b", Text: "It must be developed through practice", IsCorrect: true},
				{ID: "c", Text: "It is only important for graduate students"},
				{ID: "d", Text: "It guarantees perfect grades in all courses"},
			},
		},
		{
			QuestionText: "What benefit of peer review is mentioned in the passage?",
			Passage:      "Peer review is a valuable learning activity in which students evaluate each other's work. When students read their classmates' essays, they gain new perspectives on how to approach writing assignments. Providing constructive feedback helps reviewers develop critical thinking skills. Additionally, receiving feedback from peers often feels less intimidating than receiving it from professors.",
			Keywords:     []string{"peer review", "benefit", "advantage"},
			Options: []model.ReadingOption{
				{ID: "a", Text: "It replaces the need for professor feedback"},
				{ID: "b", Text: "It helps develop critical thinking skills", IsCorrect: true},
				{ID: "c", Text: "It guarantees higher grades on assignments"},
				{ID: "d", Text: "It is required in every university course"},
			},
		},
	}

	items := make([]model.GameItem, 0, len(practice)+len(challenge))
	for i, p := range practice {
		items = append(items, model.GameItem{
			Mode:     model.ModeReading,
			Round:    model.RoundPractice,
			Position: i,
			Payload:  mustJSON(p),
		})
	}
	for i, p := range challenge {
		items = append(items, model.GameItem{
			Mode:     model.ModeReading,
			Round:    model.RoundChallenge,
			Position: i,
			Payload:  mustJSON(p),
		})
	}
	createItems(ctx, repo, model.ModeReading, items)
}

func seedWritingItems(ctx context.Context, repo *repository.ContentRepository, templateIDs map[int]uuid.UUID) {
	type task struct {
		round         model.RoundKind
		promptType    string
		prompt        string
		keywords      []string
		minWords      int
		maxWords      int
		targetSeconds int
	}
	tasks := []task{
		{
			round:         model.RoundPractice,
			promptType:    "email",
			prompt:        "Write an email to Professor Johnson requesting an extension for your research paper. Explain that you have been sick and need 3 more days until Friday.",
			keywords:      []string{"Johnson", "extension", "research paper", "sick", "Friday"},
			minWords:      70,
			maxWords:      100,
			targetSeconds: 540,
		},
		{
			round:         model.RoundPractice,
			promptType:    "email",
			prompt:        "Write an email to Professor Martinez asking for clarification about the final exam format. Mention that you want to prepare properly and need to know the exam structure.",
			keywords:      []string{"Martinez", "clarification", "final exam", "prepare", "exam structure"},
			minWords:      70,
			maxWords:      100,
			targetSeconds: 540,
		},
		{
			round:         model.RoundPractice,
			promptType:    "discussion",
			prompt:        "Do you agree or disagree: \"Online learning is better than traditional classroom learning.\" Give reasons and examples to support your opinion.",
			keywords:      []string{"online learning", "traditional classroom", "flexibility", "self-discipline", "interaction"},
			minWords:      100,
			maxWords:      120,
			targetSeconds: 720,
		},
		{
			round:         model.RoundChallenge,
			promptType:    "email",
			prompt:        "Write an email to Professor Anderson requesting permission to attend the lecture remotely next week. Explain that you have a family emergency and will return the following week.",
			keywords:      []string{"Anderson", "permission", "remotely", "family emergency", "next week"},
			minWords:      70,
			maxWords:      100,
			targetSeconds: 480,
		},
		{
			round:         model.RoundChallenge,
			promptType:    "discussion",
			prompt:        "Do you agree or disagree: \"Students should be required to participate in group projects.\" Give reasons and examples to support your opinion.",
			keywords:      []string{"group projects", "required", "collaboration", "individual work", "teamwork"},
			minWords:      100,
			maxWords:      120,
			targetSeconds: 660,
		},
	}

	// Email prompts use writing template #1, discussion prompts #2.
	templateFor := func(promptType string) (uuid.UUID, bool) {
		if promptType == "email" {
			id, ok := templateIDs[1]
			return id, ok
		}
		id, ok := templateIDs[2]
		return id, ok
	}

	items := make([]model.GameItem, 0, len(tasks))
	for i, t := range tasks {
		tplID, ok := templateFor(t.promptType)
		if !ok {
			fmt.Printf("No writing template for %q task %d, skipping\n", t.promptType, i+1)
			continue
		}
		items = append(items, model.GameItem{
			Mode:     model.ModeWriting,
			Round:    t.round,
			Position: i,
			Payload: mustJSON(model.WritingTaskPayload{
				PromptType:    t.promptType,
				PromptText:    t.prompt,
				TemplateID:    tplID,
				Keywords:      t.keywords,
				MinWords:      t.minWords,
				MaxWords:      t.maxWords,
				TargetSeconds: t.targetSeconds,
			}),
		})
	}
	createItems(ctx, repo, model.ModeWriting, items)
}

func createItems(ctx context.Context, repo *repository.ContentRepository, mode model.GameMode, items []model.GameItem) {
	existing, err := repo.ListItems(ctx, mode, nil)
	if err != nil {
		fmt.Printf("Error listing %s items: %v\n", mode, err)
		return
	}
	if len(existing) > 0 {
		fmt.Printf("%s bank already has %d items, skipping\n", mode, len(existing))
		return
	}

	created := 0
	for i := range items {
		if err := repo.CreateItem(ctx, &items[i]); err != nil {
			fmt.Printf("Error creating %s item %d: %v\n", mode, i+1, err)
			continue
		}
		created++
	}
	fmt.Printf("Created %d/%d %s items\n", created, len(items), mode)
}

func seedBadges(ctx context.Context, repo *repository.BadgeRepository) {
	readingSkill := model.SkillReading
	speakingSkill := model.SkillSpeaking

	badges := []model.Badge{
		{
			Name:         "First Steps",
			Description:  "Complete your first game session.",
			Icon:         "👣",
			Category:     model.BadgeCategoryMilestone,
			Rarity:       model.RarityCommon,
			UnlockRule:   model.UnlockGamesCompleted,
			Threshold:    1,
			PointsReward: 10,
			OrderIndex:   1,
		},
		{
			Name:         "Point Collector",
			Description:  "Earn 100 total points.",
			Icon:         "⭐",
			Category:     model.BadgeCategoryMilestone,
			Rarity:       model.RarityCommon,
			UnlockRule:   model.UnlockTotalPoints,
			Threshold:    100,
			PointsReward: 15,
			OrderIndex:   2,
		},
		{
			Name:         "Rising Star",
			Description:  "Earn 500 total points.",
			Icon:         "🌟",
			Category:     model.BadgeCategoryMilestone,
			Rarity:       model.RarityRare,
			UnlockRule:   model.UnlockTotalPoints,
			Threshold:    500,
			PointsReward: 50,
			OrderIndex:   3,
		},
		{
			Name:         "Three-Day Streak",
			Description:  "Play on three days in a row.",
			Icon:         "🔥",
			Category:     model.BadgeCategoryStreak,
			Rarity:       model.RarityCommon,
			UnlockRule:   model.UnlockStreakDays,
			Threshold:    3,
			PointsReward: 20,
			OrderIndex:   4,
		},
		{
			Name:         "Week Warrior",
			Description:  "Keep a seven-day play streak alive.",
			Icon:         "🗓️",
			Category:     model.BadgeCategoryStreak,
			Rarity:       model.RarityEpic,
			UnlockRule:   model.UnlockStreakDays,
			Threshold:    7,
			PointsReward: 75,
			OrderIndex:   5,
		},
		{
			Name:         "Bookworm",
			Description:  "Finish ten reading sessions.",
			Icon:         "📚",
			Category:     model.BadgeCategoryMastery,
			Rarity:       model.RarityRare,
			UnlockRule:   model.UnlockSkillPractice,
			Threshold:    10,
			Skill:        &readingSkill,
			PointsReward: 40,
			OrderIndex:   6,
		},
		{
			Name:         "Smooth Talker",
			Description:  "Finish ten speaking sessions.",
			Icon:         "🎤",
			Category:     model.BadgeCategoryMastery,
			Rarity:       model.RarityRare,
			UnlockRule:   model.UnlockSkillPractice,
			Threshold:    10,
			Skill:        &speakingSkill,
			PointsReward: 40,
			OrderIndex:   7,
		},
		{
			Name:         "Marathon Player",
			Description:  "Complete fifty game sessions.",
			Icon:         "🏅",
			Category:     model.BadgeCategorySpecial,
			Rarity:       model.RarityLegendary,
			UnlockRule:   model.UnlockGamesCompleted,
			Threshold:    50,
			PointsReward: 150,
			OrderIndex:   8,
		},
	}

	created := 0
	for i := range badges {
		if err := repo.Create(ctx, &badges[i]); err != nil {
			if err == repository.ErrDuplicateBadgeName {
				fmt.Printf("Badge %q already exists, skipping\n", badges[i].Name)
				continue
			}
			fmt.Printf("Error creating badge %q: %v\n", badges[i].Name, err)
			continue
		}
		created++
	}
	fmt.Printf("Created %d/%d badges\n", created, len(badges))
}

func mustJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
