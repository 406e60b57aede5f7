package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/auth"
	"github.com/rizaldinur/crowdfunding-api/internal/logic"
	"github.com/rizaldinur/crowdfunding-api/internal/storage"
	"gorm.io/gorm"
)

// BuildHandler 项目搭建接口
type BuildHandler struct {
	buildLogic *logic.BuildLogic
	userLogic  *logic.UserLogic
	store      *storage.Store
}

// NewBuildHandler 创建项目搭建接口
func NewBuildHandler(db *gorm.DB, store *storage.Store) *BuildHandler {
	return &BuildHandler{
		buildLogic: logic.NewBuildLogic(db, store),
		userLogic:  logic.NewUserLogic(db),
		store:      store,
	}
}

// authorizeProfile URL中的profileId必须指向当前登录用户(slug或ID均可)
func authorizeProfile(c *gin.Context) (*auth.Claims, error) {
	claims := auth.FromContext(c)
	profileId := c.Param("profileId")
	if profileId == "" {
		return nil, apperr.New(apperr.NotFound, "URL参数无效。")
	}
	if profileId != claims.Slug && profileId != strconv.FormatInt(claims.UserId, 10) {
		return nil, apperr.New(apperr.AuthorizationDenied, "无权访问。").
			WithData(gin.H{"authorized": false})
	}
	return claims, nil
}

// StartProject 上传学生证明并创建空项目
func (h *BuildHandler) StartProject(c *gin.Context) {
	claims := auth.FromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "缺少学生证明文件。"))
		return
	}
	if fileHeader.Header.Get("Content-Type") != "image/jpeg" {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "证明文件仅支持JPEG格式。"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	defer src.Close()

	proofUrl, err := h.store.SaveProof(claims.Slug, fileHeader.Filename, src)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	project, err := h.buildLogic.StartProject(claims.UserId, logic.StartProjectInput{
		ProjectName:     c.PostForm("projectName"),
		Location:        c.PostForm("location"),
		Category:        c.PostForm("category"),
		School:          c.PostForm("school"),
		OtherSchool:     c.PostForm("otherSchool") == "true",
		StudentProofUrl: proofUrl,
	})
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "创建项目成功。", gin.H{
		"projectId":    project.Id,
		"projectSlug":  project.Slug,
		"userId":       claims.UserId,
		"userSlug":     claims.Slug,
		"refreshToken": auth.RefreshFromContext(c),
	})
}

// Overview 搭建总览(该读取路径上执行惰性状态回退)
func (h *BuildHandler) Overview(c *gin.Context) {
	claims, err := authorizeProfile(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	overview, err := h.buildLogic.Overview(c.Param("projectId"), claims.UserId)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取数据成功。", gin.H{
		"authorized":      true,
		"refreshToken":    auth.RefreshFromContext(c),
		"projectName":     overview.ProjectName,
		"creatorName":     overview.CreatorName,
		"basicProgress":   overview.BasicProgress,
		"storyProgress":   overview.StoryProgress,
		"profileProgress": overview.ProfileProgress,
		"paymentProgress": overview.PaymentProgress,
		"buildStatus":     overview.BuildStatus,
	})
}

// UpdateBasic 保存基本信息分区
func (h *BuildHandler) UpdateBasic(c *gin.Context) {
	claims, err := authorizeProfile(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	var req BasicSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "请求内容格式错误。"))
		return
	}

	input := logic.BasicSectionInput{
		Title:      req.Title,
		SubTitle:   req.Subtitle,
		Category:   req.Category,
		Location:   req.Location,
		ImageUrl:   req.ImageUrl,
		FundTarget: req.FundTarget,
		Duration:   req.Duration,
	}
	if req.LaunchDate != "" {
		launchDate, err := time.Parse(time.RFC3339, req.LaunchDate)
		if err != nil {
			ErrorResponse(c, apperr.New(apperr.ValidationFailed, "上线日期格式错误。"))
			return
		}
		input.LaunchDate = &launchDate
	}

	project, err := h.buildLogic.UpdateBasic(c.Param("projectId"), claims.UserId, input)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "保存成功。", gin.H{
		"authorized":  true,
		"projectId":   project.Id,
		"projectSlug": project.Slug,
	})
}

// UpdateStory 保存项目故事分区
func (h *BuildHandler) UpdateStory(c *gin.Context) {
	claims, err := authorizeProfile(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	var req StorySectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "请求内容格式错误。"))
		return
	}

	project, err := h.buildLogic.UpdateStory(c.Param("projectId"), claims.UserId, logic.StorySectionInput{
		Detail:     req.Detail,
		Benefits:   req.Benefits,
		Challenges: req.Challenges,
		Faqs:       req.Faqs,
	})
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "保存成功。", gin.H{
		"authorized":  true,
		"projectId":   project.Id,
		"projectSlug": project.Slug,
	})
}

// UpdatePayment 保存收款信息分区
func (h *BuildHandler) UpdatePayment(c *gin.Context) {
	claims, err := authorizeProfile(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	var req PaymentSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "请求内容格式错误。"))
		return
	}

	project, err := h.buildLogic.UpdatePayment(c.Param("projectId"), claims.UserId, logic.PaymentSectionInput{
		BusinessType:      req.BusinessType,
		BankName:          req.BankName,
		BankAccountNumber: req.BankAccountNumber,
	})
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "保存成功。", gin.H{
		"authorized":  true,
		"projectId":   project.Id,
		"projectSlug": project.Slug,
	})
}

// UpdateProfile 保存创建者资料分区
func (h *BuildHandler) UpdateProfile(c *gin.Context) {
	claims, err := authorizeProfile(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	var req ProfileSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "请求内容格式错误。"))
		return
	}

	user, err := h.userLogic.UpdateProfile(claims.UserId, logic.ProfileSectionInput{
		Slug:      req.Slug,
		Biography: req.Biography,
	})
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "保存成功。", gin.H{
		"authorized": true,
		"userSlug":   user.Slug,
	})
}

// SubmitReview 提交审核
func (h *BuildHandler) SubmitReview(c *gin.Context) {
	claims, err := authorizeProfile(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	project, err := h.buildLogic.SubmitForReview(c.Param("projectId"), claims.UserId)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "已提交审核。", gin.H{
		"authorized":  true,
		"projectSlug": project.Slug,
		"buildStatus": project.Status,
	})
}

// ReviewDecision 管理员审核决定
func (h *BuildHandler) ReviewDecision(c *gin.Context) {
	claims := auth.FromContext(c)

	var req ReviewDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "请求内容格式错误。"))
		return
	}

	project, err := h.buildLogic.ReviewDecision(c.Param("projectId"), claims.UserId, req.Approve)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "审核完成。", gin.H{
		"projectSlug": project.Slug,
		"buildStatus": project.Status,
	})
}

// DeleteProject 删除项目
func (h *BuildHandler) DeleteProject(c *gin.Context) {
	claims, err := authorizeProfile(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	if err := h.buildLogic.DeleteProject(c.Param("projectId"), claims.UserId); err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "删除项目成功。", nil)
}
