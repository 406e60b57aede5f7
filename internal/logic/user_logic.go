package logic

import (
	"errors"
	"strings"

	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"github.com/rizaldinur/crowdfunding-api/internal/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// UserLogic 用户账户业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// Signup 注册账户, 邮箱唯一, slug由用户名生成
func (u *UserLogic) Signup(name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperr.New(apperr.ValidationFailed, "注册信息不完整。")
	}

	var count int64
	if err := u.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.New(apperr.ValidationFailed, "邮箱已被注册。").
			WithData([]map[string]string{{"field": "email"}})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}

	err = u.db.Transaction(func(tx *gorm.DB) error {
		s, err := slug.ForName(tx, &model.User{}, name, 0)
		if err != nil {
			return err
		}
		user.Slug = s
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login 校验登录凭证, 邮箱和密码错误返回同一错误以免泄露账户存在性
func (u *UserLogic) Login(email, password string) (*model.User, error) {
	credentialErr := apperr.New(apperr.AuthenticationRequired, "邮箱或密码错误。")

	var user model.User
	if err := u.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, credentialErr
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, credentialErr
	}

	return &user, nil
}

// ProfileHeaderData 个人主页头部
type ProfileHeaderData struct {
	Authorized             bool   `json:"authorized"`
	UserName               string `json:"userName"`
	Avatar                 string `json:"avatar"`
	TotalSupportedProjects int64  `json:"totalSupportedProjects"`
	JoinDate               string `json:"joinDate"`
}

// ProfileHeader 个人主页头部, viewerSlug为访问者自己的slug(可为空)
func (u *UserLogic) ProfileHeader(profileRef, viewerSlug string) (*ProfileHeaderData, error) {
	profile, err := findUserByRef(u.db, profileRef)
	if err != nil {
		return nil, err
	}

	// 已支付支持过的项目数(去重)
	var supported int64
	err = u.db.Model(&model.Support{}).
		Where("supporter_id = ? AND transaction_status IN ?", profile.Id, model.PaidStatuses()).
		Distinct("project_id").
		Count(&supported).Error
	if err != nil {
		return nil, err
	}

	return &ProfileHeaderData{
		Authorized:             viewerSlug != "" && viewerSlug == profile.Slug,
		UserName:               profile.Name,
		Avatar:                 profile.AvatarUrl,
		TotalSupportedProjects: supported,
		JoinDate:               profile.CreatedAt.Format("2006-01-02"),
	}, nil
}

// ProfileSectionInput 创建者资料分区(搭建表单的profile部分)
type ProfileSectionInput struct {
	Slug      string // 可选的自定义slug
	Biography string
}

// UpdateProfile 保存创建者资料, 自定义slug同样做唯一性处理
func (u *UserLogic) UpdateProfile(userId int64, input ProfileSectionInput) (*model.User, error) {
	var user model.User
	if err := u.db.First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "用户不存在。")
		}
		return nil, err
	}

	user.Biography = input.Biography

	err := u.db.Transaction(func(tx *gorm.DB) error {
		if raw := strings.TrimSpace(input.Slug); raw != "" && raw != user.Slug {
			s, err := slug.ForName(tx, &model.User{}, raw, user.Id)
			if err != nil {
				return err
			}
			user.Slug = s
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}
