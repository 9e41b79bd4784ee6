package lsp

// Usage of the builtins, shown on hover and in completion details.
var builtinUsage = map[string]string{
	"defun":  "(defun name (params...) body...)",
	"lambda": "(lambda (params...) body...)",
	"set":    "(set name value...) assigns the nearest binding",
	"setq":   "(setq name value...) assigns the global binding",
	"let":    "(let ((name value)...) body...) or (let name value)",
	"if":     "(if cond then else...)",
	"quote":  "(quote x)",
	"progn":  "(progn forms...) returns the last value",
	"list":   "(list values...)",
	"eval":   "(eval forms...)",
	"and":    "(and values...)",
	"or":     "(or values...)",
	"not":    "(not value)",
	"=":      "(= values...)",
	"!=":     "(!= values...)",
	"<":      "(< numbers...)",
	"<=":     "(<= numbers...)",
	">":      "(> numbers...)",
	">=":     "(>= numbers...)",
	"+":      "(+ numbers...)",
	"-":      "(- numbers...)",
	"*":      "(* numbers...)",
	"/":      "(/ numbers...)",
	".":      "(. strings...) concatenates",
	"log":    "(log values...) writes each value on its own line",
}
