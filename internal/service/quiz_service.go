package service

import (
	"aldudu_backend/internal/model"
	"aldudu_backend/internal/repository"
	"aldudu_backend/internal/util"
	"aldudu_backend/pkg/logger"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const defaultQuizPoints = 100

// QuizService 测验构建器：每个操作只返回受影响的片段
type QuizService struct {
	QuizRepo *repository.QuizRepository
	Access   *Access
	Storage  *StorageService
}

func NewQuizService(quizRepo *repository.QuizRepository, access *Access, storage *StorageService) *QuizService {
	return &QuizService{QuizRepo: quizRepo, Access: access, Storage: storage}
}

type CreateQuizInput struct {
	Name            string
	Points          *int
	GradingCategory string
	GradeType       string
	StartDate       string
	EndDate         string
}

// BulkOption 编辑器提交的选项
type BulkOption struct {
	Text string `json:"text"`
}

// BulkQuestion Answer 可以是下标、下标数组或数字字符串；问答题时为参考答案文本
type BulkQuestion struct {
	Text        string       `json:"text"`
	Type        string       `json:"type"`
	Options     []BulkOption `json:"options"`
	Answer      interface{}  `json:"answer"`
	Description string       `json:"description"`
}

type ImageUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

type ImageResult struct {
	ImagePath string `json:"image_path"`
	URL       string `json:"url"`
}

func (s *QuizService) ownedQuiz(ctx context.Context, actor Actor, quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		return nil, notFound(err, util.ErrQuizNotFound)
	}
	if err := s.Access.RequireCourseTeacher(quiz.Course, actor); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ownedQuestion(ctx context.Context, actor Actor, questionID uint) (*model.Question, error) {
	question, err := s.QuizRepo.FindQuestion(ctx, questionID)
	if err != nil {
		return nil, notFound(err, util.ErrQuestionNotFound)
	}
	if err := s.Access.RequireCourseTeacher(question.Quiz.Course, actor); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) ownedOption(ctx context.Context, actor Actor, optionID uint) (*model.Option, error) {
	option, err := s.QuizRepo.FindOption(ctx, optionID)
	if err != nil {
		return nil, notFound(err, util.ErrOptionNotFound)
	}
	if err := s.Access.RequireCourseTeacher(option.Question.Quiz.Course, actor); err != nil {
		return nil, err
	}
	return option, nil
}

// questionFragment 重新加载题目并渲染为教师视图
func (s *QuizService) questionFragment(ctx context.Context, questionID uint) (*QuestionView, error) {
	question, err := s.QuizRepo.FindQuestion(ctx, questionID)
	if err != nil {
		return nil, notFound(err, util.ErrQuestionNotFound)
	}
	view := questionView(question, true, s.imageURL)
	return &view, nil
}

func (s *QuizService) imageURL(path string) string {
	if s.Storage == nil {
		return ""
	}
	return s.Storage.GetURL(path)
}

func (s *QuizService) CreateQuiz(ctx context.Context, actor Actor, courseID uint, input CreateQuizInput) (*QuizSummary, error) {
	if !actor.IsTeacher() {
		return nil, util.ErrNotTeacher
	}
	course, err := s.Access.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireCourseTeacher(course, actor); err != nil {
		return nil, err
	}

	name := util.SanitizeText(input.Name, util.MaxQuizNameLen)
	if name == "" {
		return nil, util.Invalid("quiz name is required")
	}

	points := defaultQuizPoints
	if input.Points != nil {
		if *input.Points < 0 {
			return nil, util.Invalid("points must not be negative")
		}
		points = *input.Points
	}

	quiz := &model.Quiz{
		Name:      name,
		CourseID:  course.ID,
		GradeType: model.ParseGradeType(input.GradeType),
		StartDate: util.ParseOptionalTime(input.StartDate),
		EndDate:   util.ParseOptionalTime(input.EndDate),
		Points:    points,
	}
	if category := util.SanitizeText(input.GradingCategory, util.MaxCategoryLen); category != "" {
		quiz.GradingCategory = &category
	}

	if err := s.QuizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	logger.Log.Info("Quiz created", zap.Uint("quiz_id", quiz.ID), zap.Uint("course_id", course.ID))
	summary := quizSummary(quiz)
	return &summary, nil
}

// GetQuiz 任课老师看到正确答案，已选课学生看不到
func (s *QuizService) GetQuiz(ctx context.Context, actor Actor, quizID uint) (*QuizDetail, error) {
	quiz, err := s.QuizRepo.FindWithQuestions(ctx, quizID)
	if err != nil {
		return nil, notFound(err, util.ErrQuizNotFound)
	}
	if err := s.Access.RequireViewer(ctx, quiz.Course, actor); err != nil {
		return nil, err
	}

	isTeacher := s.Access.IsCourseTeacher(quiz.Course, actor)
	detail := &QuizDetail{
		QuizSummary: quizSummary(quiz),
		IsTeacher:   isTeacher,
		Questions:   make([]QuestionView, 0, len(quiz.Questions)),
	}
	for i := range quiz.Questions {
		detail.Questions = append(detail.Questions, questionView(&quiz.Questions[i], isTeacher, s.imageURL))
	}
	return detail, nil
}

func (s *QuizService) DeleteQuiz(ctx context.Context, actor Actor, quizID uint) error {
	if _, err := s.ownedQuiz(ctx, actor, quizID); err != nil {
		return err
	}
	return s.QuizRepo.Delete(ctx, quizID)
}

// AddQuestion 无法识别的题型按单选题处理
func (s *QuizService) AddQuestion(ctx context.Context, actor Actor, quizID uint, rawType string) (*QuestionView, error) {
	if _, err := s.ownedQuiz(ctx, actor, quizID); err != nil {
		return nil, err
	}

	questionType, ok := model.ParseQuestionType(rawType)
	if !ok {
		questionType = model.MultipleChoice
	}

	question, err := s.QuizRepo.AddQuestion(ctx, quizID, func(order int) *model.Question {
		return &model.Question{
			QuestionText: fmt.Sprintf("Pertanyaan Baru %d", order),
			QuestionType: questionType,
			Order:        order,
			Options:      model.DefaultOptions(questionType),
		}
	})
	if err != nil {
		return nil, err
	}
	return s.questionFragment(ctx, question.ID)
}

// UpdateQuestionText 空文本替换为占位文本而不是报错
func (s *QuizService) UpdateQuestionText(ctx context.Context, actor Actor, questionID uint, text string) (*QuestionView, error) {
	if _, err := s.ownedQuestion(ctx, actor, questionID); err != nil {
		return nil, err
	}

	text = util.SanitizeText(text, util.MaxQuestionTextLen)
	if text == "" {
		text = util.EmptyQuestionPlaceholder
	}
	if err := s.QuizRepo.UpdateQuestion(ctx, questionID, map[string]interface{}{"question_text": text}); err != nil {
		return nil, err
	}
	return s.questionFragment(ctx, questionID)
}

// UpdateDescription 仅问答题有描述，空文本清除描述
func (s *QuizService) UpdateDescription(ctx context.Context, actor Actor, questionID uint, description string) (*QuestionView, error) {
	question, err := s.ownedQuestion(ctx, actor, questionID)
	if err != nil {
		return nil, err
	}
	if question.QuestionType != model.LongText {
		return nil, util.Invalid("only long text questions have a description")
	}

	var value interface{}
	if text := util.SanitizeText(description, util.MaxDescriptionLen); text != "" {
		value = text
	}
	if err := s.QuizRepo.UpdateQuestion(ctx, questionID, map[string]interface{}{"description": value}); err != nil {
		return nil, err
	}
	return s.questionFragment(ctx, questionID)
}

// ChangeType 删除全部选项并按新题型重新生成，原选项不可恢复
func (s *QuizService) ChangeType(ctx context.Context, actor Actor, questionID uint, rawType string) (*QuestionView, error) {
	if _, err := s.ownedQuestion(ctx, actor, questionID); err != nil {
		return nil, err
	}

	questionType, ok := model.ParseQuestionType(rawType)
	if !ok {
		return nil, util.ErrInvalidQuestionType
	}
	if err := s.QuizRepo.ChangeQuestionType(ctx, questionID, questionType, model.DefaultOptions(questionType)); err != nil {
		return nil, err
	}
	return s.questionFragment(ctx, questionID)
}

func (s *QuizService) DeleteQuestion(ctx context.Context, actor Actor, questionID uint) error {
	question, err := s.ownedQuestion(ctx, actor, questionID)
	if err != nil {
		return err
	}
	if err := s.QuizRepo.DeleteQuestion(ctx, questionID); err != nil {
		return err
	}
	if question.ImagePath != nil && s.Storage != nil {
		if err := s.Storage.Delete(ctx, *question.ImagePath); err != nil {
			logger.Log.Warn("Failed to delete question image", zap.String("path", *question.ImagePath), zap.Error(err))
		}
	}
	return nil
}

// SetCorrect 选项必须属于该题目
func (s *QuizService) SetCorrect(ctx context.Context, actor Actor, questionID, optionID uint) (*QuestionView, error) {
	if _, err := s.ownedQuestion(ctx, actor, questionID); err != nil {
		return nil, err
	}
	if err := s.QuizRepo.SetCorrectOption(ctx, questionID, optionID); err != nil {
		if errors.Is(err, repository.ErrOptionMismatch) {
			return nil, util.ErrOptionNotInQuestion
		}
		return nil, err
	}
	return s.questionFragment(ctx, questionID)
}

// AddOption 仅单选题可以增加选项
func (s *QuizService) AddOption(ctx context.Context, actor Actor, questionID uint) (*OptionView, error) {
	question, err := s.ownedQuestion(ctx, actor, questionID)
	if err != nil {
		return nil, err
	}
	if question.QuestionType != model.MultipleChoice {
		return nil, util.Invalid("options can only be added to multiple choice questions")
	}

	option, err := s.QuizRepo.AddOption(ctx, questionID, func(order int) *model.Option {
		return &model.Option{OptionText: fmt.Sprintf("Opsi %d", order), Order: order}
	})
	if err != nil {
		return nil, err
	}
	view := optionView(option, true)
	return &view, nil
}

func (s *QuizService) UpdateOption(ctx context.Context, actor Actor, optionID uint, text string) (*OptionView, error) {
	option, err := s.ownedOption(ctx, actor, optionID)
	if err != nil {
		return nil, err
	}

	text = util.SanitizeText(text, util.MaxOptionTextLen)
	if text == "" {
		text = util.EmptyOptionPlaceholder
	}
	if err := s.QuizRepo.UpdateOptionText(ctx, optionID, text); err != nil {
		return nil, err
	}
	option.OptionText = text
	view := optionView(option, true)
	return &view, nil
}

// DeleteOption 返回删除后该题目剩余的选项
func (s *QuizService) DeleteOption(ctx context.Context, actor Actor, optionID uint) (*QuestionView, error) {
	option, err := s.ownedOption(ctx, actor, optionID)
	if err != nil {
		return nil, err
	}
	if err := s.QuizRepo.DeleteOption(ctx, option); err != nil {
		if errors.Is(err, repository.ErrLastOption) {
			return nil, util.ErrLastOption
		}
		return nil, err
	}
	return s.questionFragment(ctx, option.QuestionID)
}

// SaveQuestions 整体替换测验的题目列表
func (s *QuizService) SaveQuestions(ctx context.Context, actor Actor, quizID uint, items []BulkQuestion) (*QuizDetail, error) {
	if _, err := s.ownedQuiz(ctx, actor, quizID); err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(items))
	for i, item := range items {
		questions = append(questions, buildBulkQuestion(item, i+1))
	}
	if err := s.QuizRepo.ReplaceQuestions(ctx, quizID, questions); err != nil {
		return nil, err
	}
	logger.Log.Info("Quiz questions replaced", zap.Uint("quiz_id", quizID), zap.Int("count", len(questions)))
	return s.GetQuiz(ctx, actor, quizID)
}

func buildBulkQuestion(item BulkQuestion, order int) model.Question {
	text := util.SanitizeText(item.Text, util.MaxQuestionTextLen)
	if text == "" {
		text = util.EmptyQuestionPlaceholder
	}

	questionType, ok := model.ParseQuestionType(item.Type)
	if !ok {
		questionType = model.LongText
	}
	question := model.Question{QuestionText: text, QuestionType: questionType, Order: order}

	if !questionType.IsChoice() {
		description := item.Description
		if description == "" && !ok {
			// 编辑器的简答题把参考答案放在 answer 中
			if text, isString := item.Answer.(string); isString {
				description = text
			}
		}
		if d := util.SanitizeText(description, util.MaxDescriptionLen); d != "" {
			question.Description = &d
		}
		return question
	}

	correct := answerIndexes(item.Answer)
	for i, o := range item.Options {
		optionText := util.SanitizeText(o.Text, util.MaxOptionTextLen)
		if optionText == "" {
			optionText = util.EmptyOptionPlaceholder
		}
		question.Options = append(question.Options, model.Option{OptionText: optionText, Order: i + 1})
	}
	if len(question.Options) == 0 {
		question.Options = model.DefaultOptions(questionType)
	}
	for i := range question.Options {
		question.Options[i].IsCorrect = correct[i]
	}
	// 判断题只保留第一个正确答案
	if questionType == model.TrueFalse {
		seen := false
		for i := range question.Options {
			if question.Options[i].IsCorrect {
				question.Options[i].IsCorrect = !seen
				seen = true
			}
		}
	}
	return question
}

// answerIndexes 解析 answer 为下标集合，无法解析的值被忽略
func answerIndexes(answer interface{}) map[int]bool {
	indexes := make(map[int]bool)
	add := func(v interface{}) {
		switch val := v.(type) {
		case float64:
			if val >= 0 && val == float64(int(val)) {
				indexes[int(val)] = true
			}
		case int:
			if val >= 0 {
				indexes[val] = true
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && n >= 0 {
				indexes[n] = true
			}
		}
	}

	switch val := answer.(type) {
	case []interface{}:
		for _, v := range val {
			add(v)
		}
	case []int:
		for _, v := range val {
			add(v)
		}
	default:
		add(val)
	}
	return indexes
}

// UploadImage 图片保存在课程目录下，同名时追加数字后缀
func (s *QuizService) UploadImage(ctx context.Context, actor Actor, questionID uint, upload ImageUpload) (*ImageResult, error) {
	question, err := s.ownedQuestion(ctx, actor, questionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(upload.Filename) == "" {
		return nil, util.Invalid("no file selected")
	}

	dir := strconv.FormatUint(uint64(question.Quiz.CourseID), 10)
	path, err := s.Storage.Store(ctx, dir, upload.Filename, upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		return nil, err
	}
	if err := s.QuizRepo.UpdateQuestion(ctx, questionID, map[string]interface{}{"image_path": path}); err != nil {
		return nil, err
	}

	if question.ImagePath != nil && *question.ImagePath != path {
		if err := s.Storage.Delete(ctx, *question.ImagePath); err != nil {
			logger.Log.Warn("Failed to delete previous question image", zap.String("path", *question.ImagePath), zap.Error(err))
		}
	}
	return &ImageResult{ImagePath: path, URL: s.Storage.GetURL(path)}, nil
}
