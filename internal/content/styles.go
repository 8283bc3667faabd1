package content

// TagStyle is the hover treatment of a project tag badge.
type TagStyle struct {
	Hover  string
	Shadow string
}

// DefaultTagStyle is used for tags without a dedicated style.
var DefaultTagStyle = TagStyle{
	Hover:  "hover:bg-primary/20 hover:text-primary-foreground",
	Shadow: "0 4px 12px rgba(124, 58, 237, 0.3)",
}

var tagStyles = map[string]TagStyle{
	// devops
	"ArgoCD":     {Hover: "hover:bg-orange-500/20 hover:text-orange-300", Shadow: "0 4px 12px rgba(251, 146, 60, 0.3)"},
	"Jenkins":    {Hover: "hover:bg-red-500/20 hover:text-red-300", Shadow: "0 4px 12px rgba(239, 68, 68, 0.3)"},
	"Terraform":  {Hover: "hover:bg-purple-500/20 hover:text-purple-300", Shadow: "0 4px 12px rgba(168, 85, 247, 0.3)"},
	"Ansible":    {Hover: "hover:bg-red-600/20 hover:text-red-300", Shadow: "0 4px 12px rgba(220, 38, 38, 0.3)"},
	"Trivy":      {Hover: "hover:bg-gray-500/20 hover:text-gray-300", Shadow: "0 4px 12px rgba(107, 114, 128, 0.3)"},
	"Docker":     {Hover: "hover:bg-blue-500/20 hover:text-blue-300", Shadow: "0 4px 12px rgba(59, 130, 246, 0.3)"},
	"Kubernetes": {Hover: "hover:bg-blue-600/20 hover:text-blue-300", Shadow: "0 4px 12px rgba(37, 99, 235, 0.3)"},

	// frontend
	"Next.js":        {Hover: "hover:bg-gray-800/20 hover:text-gray-300", Shadow: "0 4px 12px rgba(31, 41, 55, 0.3)"},
	"React":          {Hover: "hover:bg-cyan-500/20 hover:text-cyan-300", Shadow: "0 4px 12px rgba(6, 182, 212, 0.3)"},
	"ShadCN UI":      {Hover: "hover:bg-slate-500/20 hover:text-slate-300", Shadow: "0 4px 12px rgba(100, 116, 139, 0.3)"},
	"Authentication": {Hover: "hover:bg-green-500/20 hover:text-green-300", Shadow: "0 4px 12px rgba(34, 197, 94, 0.3)"},
	"E-commerce":     {Hover: "hover:bg-emerald-500/20 hover:text-emerald-300", Shadow: "0 4px 12px rgba(16, 185, 129, 0.3)"},

	// backend
	"NestJS":  {Hover: "hover:bg-red-500/20 hover:text-red-300", Shadow: "0 4px 12px rgba(239, 68, 68, 0.3)"},
	"MongoDB": {Hover: "hover:bg-green-600/20 hover:text-green-300", Shadow: "0 4px 12px rgba(22, 163, 74, 0.3)"},
	"API":     {Hover: "hover:bg-indigo-500/20 hover:text-indigo-300", Shadow: "0 4px 12px rgba(99, 102, 241, 0.3)"},
	"Banking": {Hover: "hover:bg-yellow-500/20 hover:text-yellow-300", Shadow: "0 4px 12px rgba(234, 179, 8, 0.3)"},

	// cloud
	"AWS":    {Hover: "hover:bg-orange-400/20 hover:text-orange-300", Shadow: "0 4px 12px rgba(251, 146, 60, 0.3)"},
	"EC2":    {Hover: "hover:bg-orange-500/20 hover:text-orange-300", Shadow: "0 4px 12px rgba(249, 115, 22, 0.3)"},
	"Module": {Hover: "hover:bg-violet-500/20 hover:text-violet-300", Shadow: "0 4px 12px rgba(139, 92, 246, 0.3)"},
	"Cloud":  {Hover: "hover:bg-sky-500/20 hover:text-sky-300", Shadow: "0 4px 12px rgba(14, 165, 233, 0.3)"},

	// packages
	"NPM":         {Hover: "hover:bg-red-600/20 hover:text-red-300", Shadow: "0 4px 12px rgba(220, 38, 38, 0.3)"},
	"Package":     {Hover: "hover:bg-amber-500/20 hover:text-amber-300", Shadow: "0 4px 12px rgba(245, 158, 11, 0.3)"},
	"JavaScript":  {Hover: "hover:bg-yellow-400/20 hover:text-yellow-300", Shadow: "0 4px 12px rgba(250, 204, 21, 0.3)"},
	"Development": {Hover: "hover:bg-teal-500/20 hover:text-teal-300", Shadow: "0 4px 12px rgba(20, 184, 166, 0.3)"},
}

// TagStyleFor returns the style of tag, falling back to DefaultTagStyle.
func TagStyleFor(tag string) TagStyle {
	if s, ok := tagStyles[tag]; ok {
		return s
	}
	return DefaultTagStyle
}

// ContactStyle is the hover treatment of a contact button.
type ContactStyle struct {
	Hover string
}

var DefaultContactStyle = ContactStyle{
	Hover: "hover:bg-primary/20 hover:text-primary-foreground hover:border-primary/30",
}

var contactStyles = map[string]ContactStyle{
	"Email":     {Hover: "hover:bg-blue-500/20 hover:text-blue-300 hover:border-blue-500/30"},
	"Reddit":    {Hover: "hover:bg-orange-500/20 hover:text-orange-300 hover:border-orange-500/30"},
	"X":         {Hover: "hover:bg-gray-800/20 hover:text-gray-300 hover:border-gray-500/30"},
	"Instagram": {Hover: "hover:bg-pink-500/20 hover:text-pink-300 hover:border-pink-500/30"},
	"GitHub":    {Hover: "hover:bg-gray-700/20 hover:text-gray-300 hover:border-gray-500/30"},
	"LinkedIn":  {Hover: "hover:bg-blue-600/20 hover:text-blue-300 hover:border-blue-600/30"},
}

// ContactStyleFor returns the style of a contact platform, falling back to
// DefaultContactStyle.
func ContactStyleFor(platform string) ContactStyle {
	if s, ok := contactStyles[platform]; ok {
		return s
	}
	return DefaultContactStyle
}
