package i18n

// Message keys. The English text doubles as the key.
const (
	MsgSigningIn          = "Signing in..."
	MsgSignedIn           = "Signed in, checking your profile..."
	MsgSignInFailed       = "Sign in failed, check your email or password"
	MsgNetworkError       = "Network error, please try again later"
	MsgCredentialsMissing = "Please enter your email and password"
	MsgRegistering        = "Registering..."
	MsgRegistered         = "Registration succeeded, please sign in"
	MsgRegisterFailed     = "Registration failed, please try again later"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgSecurityMissing    = "Please choose a security question and answer"
	MsgFieldsMissing      = "Please fill in all required fields"
	MsgInvalidEmail       = "Please enter a valid email address"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgSignedOut          = "Signed out"
	MsgBusy               = "A request is already in progress, please wait"

	MsgNicknameRequired = "Please set a nickname to continue"
	MsgNicknameBlank    = "Nickname cannot be empty"
	MsgNicknameSaving   = "Saving nickname..."
	MsgNicknameSaved    = "Nickname saved"
	MsgNicknameFailed   = "Failed to save nickname, please retry"
	MsgSignInFirst      = "Please sign in first"
	MsgWelcomeBack      = "Welcome back, %s"

	MsgLoading        = "Loading..."
	MsgProfileUpdated = "Profile updated"
	MsgUpdateFailed   = "Update failed: %s"

	MsgForumListFailed    = "Failed to load community data"
	MsgForumDetailFailed  = "Failed to load post details"
	MsgForumFieldsMissing = "Please fill in the title and content"
	MsgForumCreateFailed  = "Failed to create post, you may need to sign in"
	MsgForumCommentFailed = "Failed to post comment, you may need to sign in"
	MsgForumLikeFailed    = "Failed to like, you may need to sign in"

	MsgCatalogFailed   = "Failed to load resources, please retry later"
	MsgPreviewEmpty    = "<p>No content</p>"
	MsgPreviewFailed   = "<p>Preview failed, please download to view</p>"
	MsgBioPlaceholder  = "This user has not written a bio yet."
	MsgNoPostsYet      = "No posts yet"
	MsgMissingFields   = "missing required fields"
	MsgEmailTaken      = "email already registered"
	MsgBadCredentials  = "invalid email or password"
	MsgRegisterOK      = "registered"
	MsgLoginOK         = "login successful"
)

var zhHans = map[string]string{
	MsgSigningIn:          "登录中...",
	MsgSignedIn:           "登录成功，正在检查个人资料...",
	MsgSignInFailed:       "验证失败，请检查邮箱或密码",
	MsgNetworkError:       "网络异常，请稍后再试",
	MsgCredentialsMissing: "请输入邮箱和密码",
	MsgRegistering:        "注册中...",
	MsgRegistered:         "注册成功，请登录",
	MsgRegisterFailed:     "注册失败，请稍后再试",
	MsgPasswordMismatch:   "两次输入的密码不一致",
	MsgSecurityMissing:    "请设置安全问题和答案",
	MsgFieldsMissing:      "缺少必填字段",
	MsgInvalidEmail:       "请输入有效的邮箱地址",
	MsgPasswordTooShort:   "密码至少需要 6 个字符",
	MsgSignedOut:          "已退出登录",
	MsgBusy:               "请求处理中，请稍候",

	MsgNicknameRequired: "为了完善个人资料，请先设置昵称（必填）。",
	MsgNicknameBlank:    "昵称不能为空",
	MsgNicknameSaving:   "正在保存昵称...",
	MsgNicknameSaved:    "昵称已保存",
	MsgNicknameFailed:   "保存昵称失败，请重试",
	MsgSignInFirst:      "请先登录",
	MsgWelcomeBack:      "欢迎回来，%s",

	MsgLoading:        "加载中…",
	MsgProfileUpdated: "资料已更新",
	MsgUpdateFailed:   "更新失败：%s",

	MsgForumListFailed:    "社区数据加载失败",
	MsgForumDetailFailed:  "加载帖子详情失败",
	MsgForumFieldsMissing: "请填写标题和内容",
	MsgForumCreateFailed:  "创建帖子失败，可能需要登录",
	MsgForumCommentFailed: "发表评论失败，可能需要登录",
	MsgForumLikeFailed:    "点赞失败，可能需要登录",

	MsgCatalogFailed:  "资源数据加载失败，请稍后重试",
	MsgPreviewEmpty:   "<p>暂无内容</p>",
	MsgPreviewFailed:  "<p>预览失败，请下载查看</p>",
	MsgBioPlaceholder: "这位用户还没有填写个人简介。",
	MsgNoPostsYet:     "暂无帖子",
	MsgMissingFields:  "缺少必填字段",
	MsgEmailTaken:     "邮箱已注册",
	MsgBadCredentials: "验证失败，邮箱或密码不正确",
	MsgRegisterOK:     "注册成功",
	MsgLoginOK:        "登录成功",
}
