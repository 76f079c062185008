package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hemanthscode/fintrack/internal/httputil"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/uuid"
	"golang.org/x/exp/slices"
)

// RegisterSessionRoutes registers the routes that do not require
// authentication with the RouterGroup that is passed.
func (co Controller) RegisterSessionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", co.Register)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", co.Login)
}

// RegisterUserRoutes registers the routes for the authenticated user with
// the RouterGroup that is passed.
func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/me", httputil.OptionsGetPatch)
	r.GET("/me", co.GetMe)
	r.PATCH("/me", co.UpdateMe)
}

// @Summary		Register
// @Description	Creates a new user and returns a session token
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201				{object}	SessionResponse
// @Failure		400				{object}	SessionResponse
// @Failure		500				{object}	SessionResponse
// @Param			registration	body		RegisterRequest	true	"Registration data"
// @Router			/v1/users/register [post]
func (co Controller) Register(c *gin.Context) {
	var request RegisterRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SessionResponse{Error: &e})
		return
	}

	user := models.User{
		Email:    request.Email,
		Name:     request.Name,
		Currency: request.Currency,
		Token:    uuid.NewString(),
	}

	err = user.SetPassword(request.Password)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SessionResponse{Error: &e})
		return
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	data := SessionData{Token: user.Token, User: newUser(user)}
	c.JSON(http.StatusCreated, SessionResponse{Data: &data})
}

// @Summary		Login
// @Description	Verifies the credentials and returns a fresh session token
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		401			{object}	SessionResponse
// @Param			credentials	body		LoginRequest	true	"Credentials"
// @Router			/v1/users/login [post]
func (co Controller) Login(c *gin.Context) {
	var request LoginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SessionResponse{Error: &e})
		return
	}

	var user models.User
	err = models.DB.First(&user, "email = ?", request.Email).Error
	if err != nil || !user.CheckPassword(request.Password) {
		e := models.ErrCredentialsWrong.Error()
		c.JSON(http.StatusUnauthorized, SessionResponse{Error: &e})
		return
	}

	// Rotate the token on every login
	user.Token = uuid.NewString()
	err = models.DB.Save(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	data := SessionData{Token: user.Token, User: newUser(user)}
	c.JSON(http.StatusOK, SessionResponse{Data: &data})
}

// @Summary		Get user
// @Description	Returns the authenticated user
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httpError
// @Router			/v1/users/me [get]
func (co Controller) GetMe(c *gin.Context) {
	data := newUser(currentUser(c))
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Update user
// @Description	Updates the authenticated user. Only values to be updated need to be specified.
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		401		{object}	httpError
// @Failure		500		{object}	UserResponse
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users/me [patch]
func (co Controller) UpdateMe(c *gin.Context) {
	user := currentUser(c)

	updateFields, err := httputil.GetBodyFields(c, UserEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, UserResponse{Error: &e})
		return
	}

	var data UserEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, UserResponse{Error: &e})
		return
	}

	// Password changes go through the hashing helper, not the column update
	if slices.Contains(updateFields, any("Password")) {
		err = user.SetPassword(data.Password)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, UserResponse{Error: &e})
			return
		}

		err = models.DB.Model(&user).Update("password_hash", user.PasswordHash).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), UserResponse{Error: &e})
			return
		}

		updateFields = slices.DeleteFunc(updateFields, func(f any) bool { return f == any("Password") })
	}

	if len(updateFields) > 0 {
		err = models.DB.Model(&user).Select("", updateFields...).Updates(data.model()).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), UserResponse{Error: &e})
			return
		}
	}

	apiResource := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &apiResource})
}
