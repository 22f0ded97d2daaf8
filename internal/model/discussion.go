package model

// swagger:model Discussion
type Discussion struct {
	BaseModel
	Title    string `gorm:"size:200;not null" json:"title"`
	CourseID uint   `gorm:"index;not null" json:"course_id"`
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	User     *User  `gorm:"foreignKey:UserID" json:"-"`
	Closed   bool   `gorm:"not null;default:false" json:"closed"`
}

func (Discussion) TableName() string {
	return "discussions"
}

// Post ParentID 为空表示一级帖子，否则为回复
type Post struct {
	BaseModel
	Content      string      `gorm:"type:text;not null" json:"content"`
	DiscussionID uint        `gorm:"index;not null" json:"discussion_id"`
	Discussion   *Discussion `gorm:"foreignKey:DiscussionID" json:"-"`
	UserID       uint        `gorm:"index;not null" json:"user_id"`
	User         *User       `gorm:"foreignKey:UserID" json:"-"`
	ParentID     *uint       `gorm:"index" json:"parent_id"`
	Likes        []Like      `gorm:"foreignKey:PostID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

type Like struct {
	BaseModel
	PostID uint  `gorm:"not null;uniqueIndex:idx_like_post_user" json:"post_id"`
	UserID uint  `gorm:"not null;uniqueIndex:idx_like_post_user;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Like) TableName() string {
	return "likes"
}
