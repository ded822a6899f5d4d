package prompts

import (
	"fmt"

	"backend_architect/internal/types"
)

// frameworkRequirements is the framework-specific part of the generation prompt.
var frameworkRequirements = map[types.Framework]string{
	types.FastAPI: `Generate a full-stack FastAPI Python architectural blueprint.

		The response must include:
		1.  A complete project structure using SQLAlchemy (2.0+) for ORM and Alembic for database migrations.
		2.  Multiple files (e.g., ` + "`app/main.py`, `app/models.py`, `app/database.py`, `alembic.ini`" + `, and a sample migration ` + "`env.py`" + ` if necessary).
		3.  A ` + "`Dockerfile`" + ` and ` + "`docker-compose.yml`" + ` running the API next to PostgreSQL.
		4.  A GitHub Actions CI/CD pipeline in ` + "`.github/workflows/main.yml`" + ` with linting and pytest.
		5.  An ` + "`.env.example`" + ` listing every secret the service reads.
		6.  Comprehensive setup steps including 'alembic init', 'alembic revision --autogenerate', and 'alembic upgrade head'.`,

	types.Django: `Generate a full-stack Django Python architectural blueprint.

		The response must include:
		1.  A complete Django project using the Django ORM and Django REST Framework for the API layer.
		2.  Multiple files (e.g., ` + "`manage.py`, `config/settings.py`, `config/urls.py`, `api/models.py`, `api/serializers.py`, `api/views.py`" + `, and an initial migration).
		3.  A ` + "`Dockerfile`" + ` and ` + "`docker-compose.yml`" + ` running the app next to PostgreSQL.
		4.  A GitHub Actions CI/CD pipeline in ` + "`.github/workflows/main.yml`" + ` with linting and ` + "`python manage.py test`" + `.
		5.  Settings that read secrets from the environment, with an ` + "`.env.example`" + `.
		6.  Comprehensive setup steps including 'python manage.py makemigrations', 'python manage.py migrate', and 'python manage.py createsuperuser'.`,

	types.Firebase: `Generate a serverless Firebase architectural blueprint.

		The response must include:
		1.  Cloud Functions for Firebase written in TypeScript (` + "`functions/src/index.ts`" + ` plus supporting modules).
		2.  Cloud Firestore as the database, with ` + "`firestore.rules`" + ` and ` + "`firestore.indexes.json`" + ` enforcing least-privilege access.
		3.  ` + "`firebase.json`" + `, ` + "`.firebaserc`" + ` and ` + "`functions/package.json`" + ` wired for the local emulator suite.
		4.  A GitHub Actions CI/CD pipeline in ` + "`.github/workflows/main.yml`" + ` that lints, tests against the emulators and deploys.
		5.  Comprehensive setup steps including 'firebase login', 'firebase init', 'firebase emulators:start' and 'firebase deploy'.`,
}

var systemInstructions = map[types.Framework]string{
	types.FastAPI:  "You are a world-class Senior Python Architect and DevOps Engineer. You specialize in FastAPI, SQLAlchemy (2.0+), Alembic, and modern CI/CD practices. Your code is clean, type-hinted, modular, and adheres to production-grade security standards. You provide full file contents that are ready to be saved and executed.",
	types.Django:   "You are a world-class Senior Python Architect and DevOps Engineer. You specialize in Django, Django REST Framework, the Django ORM and its migrations, and modern CI/CD practices. Your code is clean, modular, and adheres to production-grade security standards. You provide full file contents that are ready to be saved and executed.",
	types.Firebase: "You are a world-class Serverless Architect. You specialize in Firebase, Cloud Functions written in TypeScript, Cloud Firestore data modelling and security rules, and the Firebase emulator suite. Your code is clean, strongly typed, and adheres to production-grade security standards. You provide full file contents that are ready to be saved and executed.",
}

const backendGenerationPrompt = `
		%s

		A user has submitted the following backend description:

		---
		"%s"
		---

		Respond with a single JSON object containing the files of the project, an explanation
		of the architecture, the list of dependencies and the ordered setup commands.
	`

// GetBackendGenerationPrompt returns the user prompt and system instruction for one framework.
func GetBackendGenerationPrompt(userPrompt string, framework types.Framework) (string, string) {
	requirements, ok := frameworkRequirements[framework]
	if !ok {
		requirements = frameworkRequirements[types.DefaultFramework]
		framework = types.DefaultFramework
	}
	return fmt.Sprintf(backendGenerationPrompt, requirements, userPrompt), systemInstructions[framework]
}
