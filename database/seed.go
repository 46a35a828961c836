package database

import (
	"gorm.io/gorm"

	"lms/models"
)

// SeedResult reports how many rows the seeder created (existing rows are
// left untouched, so re-seeding reports zeros).
type SeedResult struct {
	Categories int `json:"categories"`
	Courses    int `json:"courses"`
	Chapters   int `json:"chapters"`
	Lessons    int `json:"lessons"`
	Users      int `json:"users"`
}

type seedLesson struct {
	title       string
	videoURL    string
	position    int
	freePreview bool
}

type seedChapter struct {
	title    string
	position int
	lessons  []seedLesson
}

type seedCourse struct {
	title       string
	description string
	price       float64
	category    string
	chapters    []seedChapter
}

var seedCategories = []models.Category{
	{Name: "Frontend", Description: "Cursos de desenvolvimento front-end moderno"},
	{Name: "Automação", Description: "Cursos sobre automação de processos"},
	{Name: "Gestão", Description: "Cursos de gestão de projetos e visual"},
}

var seedCourses = []seedCourse{
	{
		title:       "Painéis Profissionais com Next.js",
		description: "Aprenda a criar painéis administrativos modernos e responsivos usando Next.js, Tailwind CSS e Shadcn/UI.",
		price:       297,
		category:    "Frontend",
		chapters: []seedChapter{
			{
				title:    "Introdução ao Next.js",
				position: 1,
				lessons: []seedLesson{
					{"Configurando o ambiente de desenvolvimento", "https://www.youtube.com/embed/watch?v=example1", 1, true},
					{"Estrutura do projeto Next.js", "https://www.youtube.com/embed/watch?v=example2", 2, false},
					{"Rotas e componentes básicos", "https://www.youtube.com/embed/watch?v=example3", 3, false},
				},
			},
			{
				title:    "Tailwind CSS e Shadcn/UI",
				position: 2,
				lessons: []seedLesson{
					{"Configurando Tailwind CSS", "https://www.youtube.com/embed/watch?v=example4", 1, false},
					{"Introdução ao Shadcn/UI", "https://www.youtube.com/embed/watch?v=example5", 2, false},
				},
			},
		},
	},
	{
		title:       "Automação de Processos Empresariais",
		description: "Dominando ferramentas de automação para otimizar fluxos de trabalho e aumentar a produtividade.",
		price:       397,
		category:    "Automação",
		chapters: []seedChapter{
			{
				title:    "Fundamentos de Automação",
				position: 1,
				lessons: []seedLesson{
					{"O que é automação de processos?", "https://www.youtube.com/embed/watch?v=example6", 1, true},
					{"Identificando oportunidades de automação", "https://www.youtube.com/embed/watch?v=example7", 2, false},
				},
			},
		},
	},
	{
		title:       "Gestão Visual de Projetos com Kanban",
		description: "Implemente painéis Kanban poderosos para gerenciar projetos com clareza e eficiência.",
		price:       197,
		category:    "Gestão",
	},
}

// Seed populates the demo data set inside a single transaction, so a
// failure partway through leaves the database untouched. Rows are matched
// on natural keys, which makes re-seeding a no-op.
func Seed(db *gorm.DB) (*SeedResult, error) {
	res := &SeedResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, c := range seedCategories {
			category := models.Category{Name: c.Name}
			created := tx.Where("name = ?", c.Name).
				Attrs(models.Category{Description: c.Description}).
				FirstOrCreate(&category)
			if created.Error != nil {
				return created.Error
			}
			if created.RowsAffected > 0 {
				res.Categories++
			}
		}

		for _, sc := range seedCourses {
			var category models.Category
			if err := tx.Where("name = ?", sc.category).First(&category).Error; err != nil {
				return err
			}

			course := models.Course{Title: sc.title}
			created := tx.Where("title = ?", sc.title).
				Attrs(models.Course{
					Description: sc.description,
					Price:       sc.price,
					CategoryID:  category.ID,
					IsPublished: true,
				}).
				FirstOrCreate(&course)
			if created.Error != nil {
				return created.Error
			}
			if created.RowsAffected > 0 {
				res.Courses++
			}

			for _, ch := range sc.chapters {
				chapter := models.Chapter{Title: ch.title, CourseID: course.ID}
				createdCh := tx.Where("title = ? AND course_id = ?", ch.title, course.ID).
					Attrs(models.Chapter{Position: ch.position, IsPublished: true}).
					FirstOrCreate(&chapter)
				if createdCh.Error != nil {
					return createdCh.Error
				}
				if createdCh.RowsAffected > 0 {
					res.Chapters++
				}

				for _, l := range ch.lessons {
					lesson := models.Lesson{Title: l.title, ChapterID: chapter.ID}
					createdL := tx.Where("title = ? AND chapter_id = ?", l.title, chapter.ID).
						Attrs(models.Lesson{
							VideoURL:      l.videoURL,
							Position:      l.position,
							IsFreePreview: l.freePreview,
							IsPublished:   true,
						}).
						FirstOrCreate(&lesson)
					if createdL.Error != nil {
						return createdL.Error
					}
					if createdL.RowsAffected > 0 {
						res.Lessons++
					}
				}
			}
		}

		// Demo back-office account.
		admin := models.User{Email: "admin@example.com"}
		createdAdmin := tx.Where("email = ?", admin.Email).
			Attrs(models.User{Name: "Admin", Role: "ADMIN"}).
			FirstOrCreate(&admin)
		if createdAdmin.Error != nil {
			return createdAdmin.Error
		}
		if createdAdmin.RowsAffected > 0 {
			res.Users++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
