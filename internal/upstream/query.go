package upstream

const profileQuery = `
query getUserProfile($username: String!) {
  matchedUser(username: $username) {
    username
    profile {
      realName
      aboutMe
      school
      websites
      countryName
      company
      jobTitle
      skillTags
      ranking
    }
    githubUrl
    twitterUrl
    linkedinUrl
    submitStats {
      acSubmissionNum {
        difficulty
        count
      }
    }
    userCalendar {
      submissionCalendar
    }
  }
  allQuestionsCount {
    difficulty
    count
  }
}`
