package repository

import (
	"aldudu_backend/internal/model"

	"gorm.io/gorm"
)

// 以下函数只在事务内调用，按依赖顺序物理删除

func deleteQuestionsTx(tx *gorm.DB, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Answer{}).Error; err != nil {
		return err
	}
	if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", questionIDs).Delete(&model.Question{}).Error
}

func deleteQuizzesTx(tx *gorm.DB, quizIDs []uint) error {
	if len(quizIDs) == 0 {
		return nil
	}

	var questionIDs []uint
	if err := tx.Model(&model.Question{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if err := deleteQuestionsTx(tx, questionIDs); err != nil {
		return err
	}

	var submissionIDs []uint
	if err := tx.Model(&model.QuizSubmission{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &submissionIDs).Error; err != nil {
		return err
	}
	if len(submissionIDs) > 0 {
		if err := tx.Where("submission_id IN ?", submissionIDs).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", submissionIDs).Delete(&model.QuizSubmission{}).Error; err != nil {
			return err
		}
	}

	return tx.Where("id IN ?", quizIDs).Delete(&model.Quiz{}).Error
}

func deletePostsTx(tx *gorm.DB, postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Like{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", postIDs).Delete(&model.Post{}).Error
}

func deleteDiscussionsTx(tx *gorm.DB, discussionIDs []uint) error {
	if len(discussionIDs) == 0 {
		return nil
	}

	var postIDs []uint
	if err := tx.Model(&model.Post{}).Where("discussion_id IN ?", discussionIDs).Pluck("id", &postIDs).Error; err != nil {
		return err
	}
	if err := deletePostsTx(tx, postIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", discussionIDs).Delete(&model.Discussion{}).Error
}

// nextOrder 返回 parentColumn = parentID 范围内最大 sort_order + 1，没有记录时为 1
func nextOrder(tx *gorm.DB, value interface{}, parentColumn string, parentID uint) (int, error) {
	var maxOrder int
	err := tx.Model(value).
		Where(parentColumn+" = ?", parentID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}
